package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/tmux"
)

var killCmd = &cobra.Command{
	Use:   "kill <project>",
	Short: "Kill the tmux session of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The argument may be a project file or a bare session name.
		session := args[0]
		if s, err := config.LoadProject(appCfg.ProjectDir, args[0]); err == nil {
			session = s.Name
		}

		runner, err := tmux.NewLocalRunner()
		if err != nil {
			return err
		}
		profile, err := tmux.Probe(runner)
		if err != nil {
			return err
		}
		snap, err := tmux.Snapshot(runner, profile, session)
		if err != nil {
			return err
		}
		if !snap.Exists {
			return fmt.Errorf("no session %q", session)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Kill session %q? [y/N] ", session)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		target := session
		if profile.ExactTargets {
			target = "=" + session
		}
		if _, err := runner.Run("kill-session", "-t", target); err != nil {
			return fmt.Errorf("failed to kill session: %w", err)
		}
		green.Printf("Killed session %q\n", session)
		return nil
	},
}

func init() {
	killCmd.Flags().BoolP("force", "f", false, "Skip confirmation")
	rootCmd.AddCommand(killCmd)
}
