// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/oneconcern/versiond/pkg/bump"
	"github.com/oneconcern/versiond/pkg/dlogger"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [major|minor|patch]",
	Short: "Cut a new release",
	Long: `Cut a new release: the current release is archived in the history, and replaced
by a release with the next version and build number, dated today (UTC).

The kind of version increment defaults to patch:
	major: 1.2.3 -> 2.0.0
	minor: 1.2.3 -> 1.3.0
	patch: 1.2.3 -> 1.2.4

The codename, Chromium base and channel of the current release are carried over unless
overridden. The channel of the new release is updated to point to it.
`,
	Example: `versiond bump minor --codename=Borealis --chromium=143.0.7499.4 --notes="Tab groups" --channel=beta`,
	Args:    bumpArgs,
	Run: func(cmd *cobra.Command, args []string) {
		kind := bump.DefaultKind.String()
		if len(args) > 0 {
			kind = args[0]
		}

		logger, err := dlogger.GetLogger(config.LogLevel, dlogger.Console())
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}

		res, err := runBump(context.Background(), config, kind, bump.Overrides{
			Codename:     versiondFlags.bump.codename,
			ChromiumBase: versiondFlags.bump.chromium,
			Notes:        versiondFlags.bump.notes,
			Channel:      versiondFlags.bump.channel,
		}, logger)
		if err != nil {
			wrapFatalln("bump failed", err)
			return
		}
		printBumpResult(out, res)
	},
}

// bumpArgs accepts an optional kind of increment
func bumpArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if len(args) == 1 {
		if _, err := bump.ParseKind(args[0]); err != nil {
			return err
		}
	}
	return nil
}

func runBump(ctx context.Context, c *CLIConfig, kind string, o bump.Overrides, logger *zap.Logger) (bump.Result, error) {
	// the kind is checked before the store is opened
	if _, err := bump.ParseKind(kind); err != nil {
		return bump.Result{}, err
	}

	vs, err := newVersionStore(c, true, opentracing.NoopTracer{}, logger)
	if err != nil {
		return bump.Result{}, err
	}
	return bump.New(vs, bump.Logger(logger)).Bump(ctx, kind, o)
}

func printBumpResult(w io.Writer, res bump.Result) {
	highlight := color.New(color.FgGreen, color.Bold).SprintFunc()

	_, _ = fmt.Fprintf(w, "Version bumped from %s to %s\n", res.OldVersion, highlight(res.NewVersion))
	_, _ = fmt.Fprintf(w, "Build number: %d\n", res.BuildNumber)
	_, _ = fmt.Fprintf(w, "Chromium base: %s\n", res.ChromiumBase)
	_, _ = fmt.Fprintf(w, "Release date: %s\n", res.ReleaseDate)
	_, _ = fmt.Fprintf(w, "Channel: %s\n", res.Channel)
}

func init() {
	addCodenameFlag(bumpCmd, &versiondFlags.bump.codename)
	addChromiumFlag(bumpCmd, &versiondFlags.bump.chromium)
	addNotesFlag(bumpCmd)
	addChannelFlag(bumpCmd, &versiondFlags.bump.channel, "")

	rootCmd.AddCommand(bumpCmd)
}
