// Copyright © 2018 One Concern

package cmd

import (
	"fmt"

	"github.com/oneconcern/versiond/pkg/dlogger"
	"github.com/oneconcern/versiond/pkg/model"
	"github.com/oneconcern/versiond/pkg/store"
	"github.com/oneconcern/versiond/pkg/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Storage backends
const (
	backendLocalFS = "localfs"
	backendS3      = "s3"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	Store    StoreConfig       `json:"store" yaml:"store" mapstructure:"store"`
	Release  model.ReleaseSite `json:"release" yaml:"release" mapstructure:"release"`
	Service  ServiceConfig     `json:"service" yaml:"service" mapstructure:"service"`
	Web      WebConfig         `json:"web" yaml:"web" mapstructure:"web"`
	Tracing  TracingConfig     `json:"tracing" yaml:"tracing" mapstructure:"tracing"`
	LogLevel string            `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
}

// StoreConfig locates the version document
type StoreConfig struct {
	Backend  string `json:"backend" yaml:"backend" mapstructure:"backend"`    // localfs or s3
	Path     string `json:"path" yaml:"path" mapstructure:"path"`             // base directory (localfs) or key prefix (s3)
	File     string `json:"file" yaml:"file" mapstructure:"file"`             // name of the document
	Bucket   string `json:"bucket" yaml:"bucket" mapstructure:"bucket"`       // s3 only
	Region   string `json:"region" yaml:"region" mapstructure:"region"`       // s3 only
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"` // s3 only, e.g. minio
}

// ServiceConfig describes the service to API clients
type ServiceConfig struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// WebConfig sets the listening addresses of the API
type WebConfig struct {
	Addr        string `json:"addr" yaml:"addr" mapstructure:"addr"`
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr" mapstructure:"metrics_addr"`
}

// TracingConfig sets where traces are reported
type TracingConfig struct {
	JaegerAgent string `json:"jaeger_agent" yaml:"jaeger_agent" mapstructure:"jaeger_agent"`
}

func setConfigDefaults() {
	site := model.DefaultReleaseSite()

	viper.SetDefault("store.backend", backendLocalFS)
	viper.SetDefault("store.path", "database")
	viper.SetDefault("store.file", store.DefaultKey)
	viper.SetDefault("store.bucket", "")
	viper.SetDefault("store.region", "us-west-2")
	viper.SetDefault("store.endpoint", "")
	viper.SetDefault("release.host", site.Host)
	viper.SetDefault("release.owner", site.Owner)
	viper.SetDefault("release.product", site.Product)
	viper.SetDefault("release.platform", site.Platform)
	viper.SetDefault("release.ext", site.Ext)
	viper.SetDefault("service.name", web.DefaultServiceName)
	viper.SetDefault("web.addr", ":3000")
	viper.SetDefault("web.metrics_addr", ":9102")
	viper.SetDefault("tracing.jaeger_agent", "")
	viper.SetDefault("loglevel", dlogger.LogLevelInfo)
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	if err = config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) validate() error {
	switch c.Store.Backend {
	case backendLocalFS:
	case backendS3:
		if c.Store.Bucket == "" {
			return fmt.Errorf("store.bucket is required with the %s backend", backendS3)
		}
	default:
		return fmt.Errorf("unknown store.backend %q: expected %s or %s", c.Store.Backend, backendLocalFS, backendS3)
	}
	return nil
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to inspect the configuration",
	Long: `Commands to inspect the versiond configuration.

The configuration merges defaults, the config file, VERSIOND_* environment variables and flags.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := showConfig(config); err != nil {
			wrapFatalln("cannot print configuration", err)
			return
		}
	},
}

func showConfig(c *CLIConfig) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = out.Write(b)
	return err
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
