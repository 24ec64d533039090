// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uitable"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/versiond/pkg/dlogger"
	"github.com/oneconcern/versiond/pkg/model"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"

	sectionCurrent  = "current"
	sectionHistory  = "history"
	sectionChannels = "channels"
)

var showCmd = &cobra.Command{
	Use:       "show [current|history|channels]",
	Short:     "Print the content of the version document",
	Long:      "Print the current release (default), the history of releases, or the channels of the version document.",
	ValidArgs: []string{sectionCurrent, sectionHistory, sectionChannels},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		section := sectionCurrent
		if len(args) > 0 {
			section = args[0]
		}

		logger, err := dlogger.GetLogger(config.LogLevel, dlogger.Console())
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		vs, err := newVersionStore(config, false, opentracing.NoopTracer{}, logger)
		if err != nil {
			wrapFatalln("cannot open version store", err)
			return
		}
		doc, err := vs.Load(context.Background())
		if err != nil {
			wrapFatalln("cannot load version store", err)
			return
		}
		if err = printSection(out, doc, section, versiondFlags.show.output); err != nil {
			wrapFatalln("cannot print "+section, err)
			return
		}
	},
}

func printSection(w io.Writer, vs *model.VersionStore, section, format string) error {
	var payload interface{}
	switch section {
	case sectionCurrent:
		payload = vs.Current
	case sectionHistory:
		history := vs.History
		if history == nil {
			history = []model.VersionRecord{}
		}
		payload = history
	case sectionChannels:
		payload = vs.Channels
	default:
		return fmt.Errorf("unknown section %q", section)
	}

	switch format {
	case outputJSON:
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case outputYAML:
		b, err := yaml.Marshal(payload)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case outputTable:
		_, err := fmt.Fprintln(w, sectionTable(vs, section))
		return err
	default:
		return fmt.Errorf("unknown output format %q: expected %s, %s or %s", format, outputJSON, outputYAML, outputTable)
	}
}

func sectionTable(vs *model.VersionStore, section string) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true

	switch section {
	case sectionChannels:
		table.AddRow("CHANNEL", "VERSION")
		for _, channel := range model.Channels() {
			if version, ok := vs.Channels[channel.String()]; ok {
				table.AddRow(channel, version)
			}
		}
	case sectionHistory:
		table.AddRow("VERSION", "CODENAME", "RELEASE DATE", "CHROMIUM", "BUILD", "CHANNEL", "NOTES")
		for _, r := range vs.History {
			table.AddRow(r.Version, r.CodenameValue(), r.ReleaseDate, r.ChromiumBase, strconv.FormatInt(r.BuildNumber, 10), r.Channel, r.Notes)
		}
	default:
		r := vs.Current
		table.AddRow("Version:", r.Version)
		table.AddRow("Codename:", r.CodenameValue())
		table.AddRow("Release date:", r.ReleaseDate)
		table.AddRow("Chromium base:", r.ChromiumBase)
		table.AddRow("Build number:", strconv.FormatInt(r.BuildNumber, 10))
		table.AddRow("Channel:", r.Channel)
	}
	return table
}

func init() {
	addOutputFlag(showCmd)
	rootCmd.AddCommand(showCmd)
}
