package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gocoil/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocoil",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gocoil v%s\n", version.Version)
		fmt.Println("Bobbin Winding Layout Calculator")
		fmt.Printf("Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
