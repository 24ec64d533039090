// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flagsT struct {
	root struct {
		logLevel  string
		backend   string
		storePath string
		storeFile string
	}
	bump struct {
		codename string
		chromium string
		notes    string
		channel  string
	}
	seed struct {
		version  string
		codename string
		date     string
		chromium string
		channel  string
		build    int64
	}
	serve struct {
		addr        string
		metricsAddr string
		jaegerAgent string
	}
	show struct {
		output string
	}
	version struct {
		output string
	}
}

var versiondFlags = flagsT{}

// bindFlag makes a flag override the configuration key
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&versiondFlags.root.logLevel, loglevel, "info",
		"The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	bindFlag("loglevel", cmd.PersistentFlags().Lookup(loglevel))
	return loglevel
}

func addStoreFlags(cmd *cobra.Command) {
	backend := "backend"
	cmd.PersistentFlags().StringVar(&versiondFlags.root.backend, backend, backendLocalFS,
		"The storage backend of the version document: localfs or s3")
	bindFlag("store.backend", cmd.PersistentFlags().Lookup(backend))

	path := "store"
	cmd.PersistentFlags().StringVar(&versiondFlags.root.storePath, path, "database",
		"The directory holding the version document (localfs), or the key prefix (s3)")
	bindFlag("store.path", cmd.PersistentFlags().Lookup(path))

	file := "file"
	cmd.PersistentFlags().StringVar(&versiondFlags.root.storeFile, file, "version.json",
		"The name of the version document")
	bindFlag("store.file", cmd.PersistentFlags().Lookup(file))
}

func addCodenameFlag(cmd *cobra.Command, target *string) string {
	codename := "codename"
	cmd.Flags().StringVar(target, codename, "", "The codename of the release")
	return codename
}

func addChromiumFlag(cmd *cobra.Command, target *string) string {
	chromium := "chromium"
	cmd.Flags().StringVar(target, chromium, "", "The upstream Chromium version the release is based on")
	return chromium
}

func addChannelFlag(cmd *cobra.Command, target *string, defaultChannel string) string {
	channel := "channel"
	cmd.Flags().StringVar(target, channel, defaultChannel, "The release channel: stable, beta, dev or canary")
	return channel
}

func addNotesFlag(cmd *cobra.Command) string {
	notes := "notes"
	cmd.Flags().StringVar(&versiondFlags.bump.notes, notes, "",
		`The release notes attached to the archived release (defaults to "Version <previous version>")`)
	return notes
}

func addOutputFlag(cmd *cobra.Command) string {
	output := "output"
	cmd.Flags().StringVarP(&versiondFlags.show.output, output, "o", outputJSON, "The output format: json, yaml or table")
	return output
}

func addServeFlags(cmd *cobra.Command) {
	addr := "addr"
	cmd.Flags().StringVar(&versiondFlags.serve.addr, addr, ":3000", "The listening address of the API")
	bindFlag("web.addr", cmd.Flags().Lookup(addr))

	metricsAddr := "metrics-addr"
	cmd.Flags().StringVar(&versiondFlags.serve.metricsAddr, metricsAddr, ":9102",
		"The listening address of the prometheus metrics. Empty to disable")
	bindFlag("web.metrics_addr", cmd.Flags().Lookup(metricsAddr))

	jaegerAgent := "jaeger-agent"
	cmd.Flags().StringVar(&versiondFlags.serve.jaegerAgent, jaegerAgent, "",
		"The jaeger agent host:port traces are reported to. Empty to disable tracing")
	bindFlag("tracing.jaeger_agent", cmd.Flags().Lookup(jaegerAgent))
}
