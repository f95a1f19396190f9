package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/launch"
	"github.com/simon/muxup/internal/otel"
	"github.com/simon/muxup/internal/tmux"
	"github.com/simon/muxup/internal/tui"
)

var (
	appCfg     *config.Config
	tel        *otel.Telemetry
	appVersion = "dev"

	verbose        bool
	flagProjectDir string
)

func SetVersionInfo(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	appVersion = version
}

var rootCmd = &cobra.Command{
	Use:   "muxup",
	Short: "Launch tmux sessions from project files",
	Long: `muxup turns a YAML project file into a running tmux session:
windows, panes, working directories and startup commands. Opening a
project that is already running attaches to it instead of rebuilding.

Run without arguments for an interactive project picker.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if flagProjectDir != "" {
			cfg.ProjectDir = config.ExpandPath(flagProjectDir)
		}
		appCfg = cfg

		t, err := otel.Init(cmd.Context(), cfg.Otel, appVersion)
		if err != nil {
			log.WithError(err).Warn("telemetry disabled")
			t = &otel.Telemetry{}
		}
		tel = t
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tel != nil {
			if err := tel.Shutdown(cmd.Context()); err != nil {
				log.WithError(err).Debug("telemetry shutdown failed")
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

// runPicker loops the picker so it comes back when the user detaches
// from a session opened through it.
func runPicker(cmd *cobra.Command) error {
	runner, err := tmux.NewLocalRunner()
	if err != nil {
		return err
	}
	runner.ChildAttach = true

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	for {
		m := tui.NewModel(appCfg.ProjectDir, runner, store)
		p := tea.NewProgram(m, tea.WithAltScreen())

		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("picker error: %w", err)
		}
		final := finalModel.(tui.Model)

		switch {
		case final.OpenProject != "":
			s, err := config.LoadProject(appCfg.ProjectDir, final.OpenProject)
			if err != nil {
				return err
			}
			_, err = launch.Launch(cmd.Context(), s, launch.Options{
				Runner:  runner,
				Project: final.OpenProject,
				Store:   store,
				Metrics: telMetrics(),
			})
			if err != nil {
				return err
			}
			// Attach ran as a child process and the user detached;
			// loop restarts the picker.

		case final.EditProject != "":
			if err := editProject(final.EditProject); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagProjectDir, "project-dir", "", "Directory holding project files")
}
