package tmux

import (
	"os"
	"os/exec"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Attach connects the current client to the named session. Inside a
// running tmux client it switches that client instead of nesting. The
// default mode replaces the current process with the tmux client; with
// ChildAttach set it runs the client as a child and returns when the
// user detaches.
func (r *LocalRunner) Attach(session string) error {
	if os.Getenv("TMUX") != "" {
		_, err := r.Run("switch-client", "-t", session)
		return err
	}
	log.WithField("session", session).Debug("attaching")
	if r.ChildAttach {
		cmd := exec.Command(r.Bin, "attach-session", "-t", session)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Env = filterTMUX(os.Environ())
		return cmd.Run()
	}
	return syscall.Exec(r.Bin, []string{"tmux", "attach-session", "-t", session}, filterTMUX(os.Environ()))
}

// filterTMUX strips the TMUX variable so the attach is not rejected as
// a nested client.
func filterTMUX(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, "TMUX=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}
