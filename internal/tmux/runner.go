package tmux

import (
	"errors"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Runner executes tmux commands and attaches clients. The one real
// implementation shells out to a local binary; tests substitute their
// own.
type Runner interface {
	Run(args ...string) (string, error)
	Attach(session string) error
}

// LocalRunner runs commands against the tmux binary on this machine.
type LocalRunner struct {
	Bin string
	// ChildAttach attaches in a child process instead of replacing the
	// current one, so the caller regains control after detach.
	ChildAttach bool
}

// NewLocalRunner locates tmux in PATH.
func NewLocalRunner() (*LocalRunner, error) {
	bin, err := exec.LookPath("tmux")
	if err != nil {
		return nil, &ProbeError{Reason: "tmux not found in PATH", Err: err}
	}
	return &LocalRunner{Bin: bin}, nil
}

// Run executes one tmux command and returns its stdout with the
// trailing newline stripped.
func (r *LocalRunner) Run(args ...string) (string, error) {
	start := time.Now()
	out, err := exec.Command(r.Bin, args...).Output()
	log.WithFields(log.Fields{
		"args":     strings.Join(args, " "),
		"duration": time.Since(start).Round(time.Millisecond),
		"ok":       err == nil,
	}).Debug("tmux command")
	if err != nil {
		var exitErr *exec.ExitError
		stderr := ""
		if errors.As(err, &exitErr) {
			stderr = string(exitErr.Stderr)
		}
		return "", wrapError(err, stderr, args)
	}
	return strings.TrimRight(string(out), "\n"), nil
}
