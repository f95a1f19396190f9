package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/state"
	"github.com/simon/muxup/internal/tmux"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects and their session status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := config.ListProjects(appCfg.ProjectDir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("No projects in %s. Create one with: muxup new <name>\n", appCfg.ProjectDir)
			return nil
		}

		var sessions []tmux.SessionInfo
		if runner, err := tmux.NewLocalRunner(); err == nil {
			sessions, _ = tmux.ListSessions(runner)
		}
		byName := make(map[string]tmux.SessionInfo, len(sessions))
		for _, s := range sessions {
			byName[s.Name] = s
		}

		var history map[string]state.Launch
		if store := openStore(); store != nil {
			history, _ = store.LastByProject()
			store.Close()
		}

		for _, name := range names {
			session := name
			windows := 0
			if s, err := config.LoadProject(appCfg.ProjectDir, name); err == nil {
				session = s.Name
				windows = len(s.Windows)
			}

			status := fmt.Sprintf("%-10s", "-")
			if info, ok := byName[session]; ok {
				if info.Attached {
					status = yellow.Sprintf("%-10s", "attached")
				} else {
					status = green.Sprintf("%-10s", "running")
				}
			}

			last := "-"
			if l, ok := history[name]; ok {
				last = l.At.Local().Format("2006-01-02 15:04")
			}

			fmt.Printf("%-20s %-20s %s %2d windows   last open %s\n",
				name, session, status, windows, last)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
