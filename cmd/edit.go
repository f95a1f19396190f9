package cmd

import (
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <project>",
	Short: "Open a project file in your editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProject(args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
