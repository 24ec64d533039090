// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/go-openapi/swag"
	"github.com/oneconcern/versiond/pkg/dlogger"
	"github.com/oneconcern/versiond/pkg/model"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the version document with a first release",
	Long: `Create the version document with a first release, an empty history,
and the channel of the release pointing to it.

An existing document is never replaced.
`,
	Example: `versiond seed --version=1.0.0 --codename=Aurora --chromium=142.0.7444.60 --channel=stable`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := dlogger.GetLogger(config.LogLevel, dlogger.Console())
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}

		record, err := seedRecord(time.Now())
		if err != nil {
			wrapFatalln("invalid release", err)
			return
		}
		if err = runSeed(context.Background(), config, record, logger); err != nil {
			wrapFatalln("seed failed", err)
			return
		}
		_, _ = fmt.Fprintf(out, "Seeded version %s (build %d) on channel %s\n", record.Version, record.BuildNumber, record.Channel)
	},
}

func seedRecord(now time.Time) (model.VersionRecord, error) {
	flags := versiondFlags.seed
	channel, err := model.ParseChannel(flags.channel)
	if err != nil {
		return model.VersionRecord{}, err
	}

	record := model.VersionRecord{
		Version:      flags.version,
		ReleaseDate:  flags.date,
		ChromiumBase: flags.chromium,
		BuildNumber:  flags.build,
		Channel:      channel,
	}
	if record.ReleaseDate == "" {
		record.ReleaseDate = now.UTC().Format(model.ReleaseDateLayout)
	}
	if flags.codename != "" {
		record.Codename = swag.String(flags.codename)
	}
	return record, nil
}

func runSeed(ctx context.Context, c *CLIConfig, record model.VersionRecord, logger *zap.Logger) error {
	vs, err := newVersionStore(c, true, opentracing.NoopTracer{}, logger)
	if err != nil {
		return err
	}
	if err = vs.Seed(ctx, model.NewVersionStore(record)); err != nil {
		return err
	}
	logger.Info("version store seeded", zap.String("store", vs.String()), zap.String("version", record.Version))
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&versiondFlags.seed.version, "version", "1.0.0", "The version of the first release")
	seedCmd.Flags().StringVar(&versiondFlags.seed.date, "date", "", "The release date, as YYYY-MM-DD (defaults to today)")
	seedCmd.Flags().Int64Var(&versiondFlags.seed.build, "build", 1, "The build number of the first release")
	addCodenameFlag(seedCmd, &versiondFlags.seed.codename)
	addChromiumFlag(seedCmd, &versiondFlags.seed.chromium)
	addChannelFlag(seedCmd, &versiondFlags.seed.channel, model.Stable.String())

	rootCmd.AddCommand(seedCmd)
}
