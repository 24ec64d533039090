// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "versiond",
	Short: "versiond publishes the release metadata of a product",
	Long: `versiond publishes the release metadata of a product: the current release,
the history of past releases and the version followed by each release channel.

The metadata is kept in a single JSON document. "versiond serve" exposes it over a
read-only HTTP API, while "versiond bump" cuts new releases.

Configuration is read from versiond.yaml (in ., $HOME/.versiond or /etc/versiond, or the file
set by VERSIOND_CONFIG) and from VERSIOND_* environment variables, e.g. VERSIOND_STORE_PATH.
Flags take precedence.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevelFlag(rootCmd)
	addStoreFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigDefaults()

	if os.Getenv("VERSIOND_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("VERSIOND_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.versiond")
		viper.AddConfigPath("/etc/versiond")
		viper.SetConfigName("versiond")
	}

	viper.SetEnvPrefix("versiond")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if os.Getenv("VERSIOND_CONFIG") != "" {
		wrapFatalln("cannot read config file "+os.Getenv("VERSIOND_CONFIG"), err)
		return
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
		return
	}
}
