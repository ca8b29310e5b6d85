package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the kbs version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("kbs version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
