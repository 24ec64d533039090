// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/gosuri/uitable"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X github.com/oneconcern/versiond/cmd/versiond/cmd.Version=..."
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// BuildInfo describes the versiond binary itself, not the releases it manages
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	GitState  string `json:"gitState,omitempty"`
	GoVersion string `json:"goVersion"`
}

func currentBuild() BuildInfo {
	info := BuildInfo{
		Version:   "dev",
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitState:  GitState,
		GoVersion: runtime.Version(),
	}
	if Version != "" {
		info.Version = Version
		if info.GitState == "" {
			info.GitState = "clean"
		}
	}
	return info
}

func printBuild(w io.Writer, info BuildInfo, format string) error {
	if format == outputJSON {
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	table := uitable.New()
	table.AddRow("Version:", info.Version)
	table.AddRow("Build date:", info.BuildDate)
	table.AddRow("Commit:", info.GitCommit)
	table.AddRow("Working tree:", info.GitState)
	table.AddRow("Go:", info.GoVersion)
	_, err := fmt.Fprintln(w, table)
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the version of versiond",
	Long: `Prints the build of versiond: its semver (git describe --tags), build date,
git commit, working tree state (dirty when built with uncommitted changes) and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printBuild(out, currentBuild(), versiondFlags.version.output); err != nil {
			wrapFatalln("cannot print version", err)
		}
	},
}

func init() {
	versionCmd.Flags().StringVarP(&versiondFlags.version.output, "output", "o", outputTable, "output format: json or table")
	rootCmd.AddCommand(versionCmd)
}
