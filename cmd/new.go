package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/simon/muxup/internal/config"
)

var validName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project file from the template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !validName.MatchString(name) {
			return fmt.Errorf("invalid name %q: use only alphanumeric, hyphens, underscores", name)
		}

		path, err := config.CreateProject(appCfg.ProjectDir, name)
		if err != nil {
			return err
		}
		green.Printf("Created %s\n", path)

		if edit, _ := cmd.Flags().GetBool("edit"); edit {
			return openEditor(path)
		}
		return nil
	},
}

func init() {
	newCmd.Flags().BoolP("edit", "e", false, "Open the new project in your editor")
	rootCmd.AddCommand(newCmd)
}
