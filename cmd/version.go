package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo contains information about the build
var BuildInfo = struct {
	Version   string
	GitCommit string
	BuildTime string
}{
	Version: "dev",
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("crusher-service %s\n", BuildInfo.Version)
		if BuildInfo.GitCommit != "" {
			fmt.Printf("  commit: %s\n", BuildInfo.GitCommit)
		}
		if BuildInfo.BuildTime != "" {
			fmt.Printf("  built:  %s\n", BuildInfo.BuildTime)
		}
		fmt.Printf("  go:     %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
