package tmux

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoServer means no tmux server is reachable on the socket.
	ErrNoServer = errors.New("no tmux server running")
	// ErrSessionExists means a create collided with an existing session.
	ErrSessionExists = errors.New("session already exists")
	// ErrSessionNotFound means the target session does not exist.
	ErrSessionNotFound = errors.New("session not found")
)

// ProbeError reports that the environment could not be inspected: tmux
// is missing, its version is unusable, or a listing command failed in a
// way that is not just "nothing there yet".
type ProbeError struct {
	Reason string
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("probe failed: %s", e.Reason)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// wrapError classifies stderr of a failed tmux command into a sentinel
// error where one applies, keeping the original text for everything
// else.
func wrapError(err error, stderr string, args []string) error {
	msg := strings.TrimSpace(stderr)
	low := strings.ToLower(msg)
	cmd := "tmux"
	if len(args) > 0 {
		cmd = "tmux " + args[0]
	}
	switch {
	case strings.Contains(low, "no server running"),
		strings.Contains(low, "error connecting to"):
		return fmt.Errorf("%s: %w", cmd, ErrNoServer)
	case strings.Contains(low, "duplicate session"):
		return fmt.Errorf("%s: %w", cmd, ErrSessionExists)
	case strings.Contains(low, "session not found"),
		strings.Contains(low, "can't find session"),
		strings.Contains(low, "no such session"):
		return fmt.Errorf("%s: %w", cmd, ErrSessionNotFound)
	}
	if msg != "" {
		return fmt.Errorf("%s: %s: %w", cmd, msg, err)
	}
	return fmt.Errorf("%s: %w", cmd, err)
}
