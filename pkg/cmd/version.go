package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/c9s/bbands/pkg/version"
)

func init() {
	VersionCmd.Flags().Bool("short", false, "only print the version name")
	RootCmd.AddCommand(VersionCmd)
}

type buildInfo struct {
	Version   string
	GitRef    string
	GoVersion string
	Platform  string
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Version:   version.Version,
		GitRef:    version.VersionGitRef,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func writeBuildInfo(w io.Writer, info buildInfo, short bool) {
	if short {
		fmt.Fprintln(w, info.Version)
		return
	}

	fmt.Fprintf(w, "bbands %s (%s) built with %s for %s\n", info.Version, info.GitRef, info.GoVersion, info.Platform)
}

var VersionCmd = &cobra.Command{
	Use:          "version",
	Short:        "show the version and the build environment",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return err
		}

		writeBuildInfo(cmd.OutOrStdout(), currentBuildInfo(), short)
		return nil
	},
}
