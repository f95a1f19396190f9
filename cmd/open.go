package cmd

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/launch"
)

var openCmd = &cobra.Command{
	Use:     "open <project>",
	Aliases: []string{"o"},
	Short:   "Open a project session, creating it if needed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadProject(appCfg.ProjectDir, args[0])
		if err != nil {
			return err
		}
		detached, _ := cmd.Flags().GetBool("detached")

		ctx := cmd.Context()
		if tel != nil && tel.Tracer != nil {
			var span trace.Span
			ctx, span = tel.Tracer.Start(ctx, "muxup.open")
			defer span.End()
		}

		store := openStore()
		if store != nil {
			defer store.Close()
		}

		res, err := launch.Launch(ctx, s, launch.Options{
			Project:  args[0],
			Detached: detached,
			Store:    store,
			Metrics:  telMetrics(),
		})
		if err != nil {
			return err
		}

		// Attaching replaces the process, so these only print in
		// detached mode.
		if res.Created {
			green.Printf("Created session %q: %d commands, tmux %s\n",
				res.Plan.Session, len(res.Plan.Commands), res.Profile.Version)
		} else {
			yellow.Printf("Session %q already running\n", res.Plan.Session)
		}
		return nil
	},
}

func init() {
	openCmd.Flags().BoolP("detached", "d", false, "Build the session without attaching")
	rootCmd.AddCommand(openCmd)
}
