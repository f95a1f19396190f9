package cmd

import (
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/otel"
	"github.com/simon/muxup/internal/state"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// openStore opens the launch history, best effort. A nil store just
// means no history.
func openStore() *state.Store {
	store, err := state.Open()
	if err != nil {
		log.WithError(err).Warn("launch history unavailable")
		return nil
	}
	return store
}

func telMetrics() *otel.Metrics {
	if tel == nil {
		return nil
	}
	return tel.Metrics
}

// openEditor runs $VISUAL or $EDITOR on path, falling back to vi.
// The editor value may carry arguments ("code --wait").
func openEditor(path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	parts := append(strings.Fields(editor), path)
	c := exec.Command(parts[0], parts[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func editProject(name string) error {
	path, err := config.ProjectPath(appCfg.ProjectDir, name)
	if err != nil {
		return err
	}
	return openEditor(path)
}
