// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/oneconcern/versiond/pkg/dlogger"
	"github.com/oneconcern/versiond/pkg/errors"
	"github.com/oneconcern/versiond/pkg/store/status"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exit code for a document which breaks an invariant
const exitCorrupt = 2

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the version document",
	Long: `Check that the version document parses and satisfies all its invariants:
	* the current build number is greater than every archived one
	* the history is sorted by strictly decreasing build number
	* the channel of the current release points to it
	* every channel points to a known release
	* every version is of the form MAJOR.MINOR.PATCH

Exits with status 2 when the document is corrupt, 1 when it cannot be read.
`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := dlogger.GetLogger(config.LogLevel, dlogger.Console())
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		err = runValidate(context.Background(), config, out, logger)
		switch {
		case err == nil:
		case errors.Is(err, status.ErrCorruptStore):
			wrapFatalWithCodef(exitCorrupt, "%v", err)
		default:
			wrapFatalln("cannot validate version store", err)
		}
	},
}

func runValidate(ctx context.Context, c *CLIConfig, w io.Writer, logger *zap.Logger) error {
	vs, err := newVersionStore(c, false, opentracing.NoopTracer{}, logger)
	if err != nil {
		return err
	}
	doc, err := vs.Load(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s is valid: current release %s (build %d), %d archived releases, %d channels\n",
		vs, doc.Current.Version, doc.Current.BuildNumber, len(doc.History), len(doc.Channels))
	return err
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
