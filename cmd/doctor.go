package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/tmux"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check tmux capabilities and the muxup setup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := tmux.NewLocalRunner()
		if err != nil {
			red.Println("tmux not found in PATH")
			return err
		}
		fmt.Printf("tmux binary      %s\n", runner.Bin)

		profile, err := tmux.Probe(runner)
		if err != nil {
			return err
		}
		fmt.Printf("tmux version     %s\n", profile.Version)
		fmt.Printf("capability tier  %s\n", profile.Generation)
		if profile.Unstable {
			yellow.Println("unreleased build: capabilities assumed current")
		}

		check := func(label string, ok bool) {
			mark := green.Sprint("yes")
			if !ok {
				mark = red.Sprint("no")
			}
			fmt.Printf("  %-28s %s\n", label, mark)
		}
		fmt.Println("features:")
		check("named windows (-n)", profile.NamedWindows)
		check("start directory (-c)", profile.StartDirFlag)
		check("exact session targets (=)", profile.ExactTargets)
		check("create reporting (-P)", profile.PrintCreated)

		layouts := make([]string, 0, len(profile.Layouts))
		for name, ok := range profile.Layouts {
			if ok {
				layouts = append(layouts, name)
			}
		}
		sort.Strings(layouts)
		fmt.Printf("layouts          %s\n", strings.Join(layouts, ", "))

		// Shifted index options move every window and pane address.
		if out, err := runner.Run("start-server", ";", "show-options", "-g"); err == nil {
			base, paneBase := "0", "0"
			for _, line := range strings.Split(out, "\n") {
				fields := strings.Fields(line)
				if len(fields) != 2 {
					continue
				}
				switch fields[0] {
				case "base-index":
					base = fields[1]
				case "pane-base-index":
					paneBase = fields[1]
				}
			}
			fmt.Printf("base-index       %s, pane-base-index %s\n", base, paneBase)
		}

		if sessions, err := tmux.ListSessions(runner); err == nil {
			fmt.Printf("sessions         %d running\n", len(sessions))
		}

		fmt.Printf("project dir      %s", appCfg.ProjectDir)
		names, err := config.ListProjects(appCfg.ProjectDir)
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Printf(" (%d projects)\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
