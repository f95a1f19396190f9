package launch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/simon/muxup/internal/otel"
	"github.com/simon/muxup/internal/tmux"
)

// CommandError reports the first plan entry tmux rejected. Execution
// stops there; nothing already created is rolled back.
type CommandError struct {
	Args []string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("tmux %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Executor realizes a plan strictly in order, learning real window and
// pane indexes from create reports and substituting them into later
// entries.
type Executor struct {
	Runner tmux.Runner
	// Detached suppresses the attach entry of an attach-only plan.
	Detached bool
	Metrics  *otel.Metrics
}

// Execute runs every plan entry in sequence and stops at the first
// rejection.
func (e *Executor) Execute(ctx context.Context, plan Plan) error {
	refs := map[string]string{}
	for _, c := range plan.Commands {
		if c.Kind == KindAttach {
			if e.Detached {
				log.WithField("session", plan.Session).Debug("already running, not attaching")
				continue
			}
			e.Metrics.CommandRun(ctx, c.Kind.String())
			if err := e.Runner.Attach(plan.Session); err != nil {
				return &CommandError{Args: c.Args, Err: err}
			}
			continue
		}

		args, err := resolveArgs(c.Args, refs)
		if err != nil {
			return &CommandError{Args: c.Args, Err: err}
		}
		out, err := e.Runner.Run(args...)
		if err != nil {
			e.Metrics.CommandFailed(ctx, c.Kind.String())
			return &CommandError{Args: args, Err: err}
		}
		e.Metrics.CommandRun(ctx, c.Kind.String())

		if c.Kind == KindSendCommand {
			// Terminate the literal text with a newline keystroke.
			enter := []string{"send-keys", "-t", targetArg(args), "Enter"}
			if _, err := e.Runner.Run(enter...); err != nil {
				e.Metrics.CommandFailed(ctx, c.Kind.String())
				return &CommandError{Args: enter, Err: err}
			}
		}
		if c.Creates != nil {
			if err := e.bind(plan.Session, c, out, refs); err != nil {
				return err
			}
		}
	}
	return nil
}

// bind records the real indexes a create reported, keyed by the
// placeholder tokens later entries use.
func (e *Executor) bind(session string, c Command, out string, refs map[string]string) error {
	report := out
	if len(c.Probe) > 0 {
		probed, err := e.Runner.Run(c.Probe...)
		if err != nil {
			return &CommandError{Args: c.Probe, Err: err}
		}
		report = probed
	}
	widx, pidx, err := parseCreateReport(report)
	if err != nil {
		return &CommandError{Args: c.Args, Err: err}
	}
	refs[WindowTarget(c.Creates.Window).Token()] = fmt.Sprintf("%s:%d", session, widx)
	refs[c.Creates.Token()] = fmt.Sprintf("%s:%d.%d", session, widx, pidx)
	log.WithFields(log.Fields{
		"logical": c.Creates.Token(),
		"real":    fmt.Sprintf("%d.%d", widx, pidx),
	}).Debug("target resolved")
	return nil
}

// resolveArgs substitutes known real targets for placeholder tokens.
// Only arguments in target position are touched.
func resolveArgs(in []string, refs map[string]string) ([]string, error) {
	args := make([]string, len(in))
	copy(args, in)
	for i, a := range args {
		if i == 0 || args[i-1] != "-t" {
			continue
		}
		if real, ok := refs[a]; ok {
			args[i] = real
			continue
		}
		if strings.HasPrefix(a, "@{") {
			return nil, fmt.Errorf("unresolved target %s", a)
		}
	}
	return args, nil
}

func targetArg(args []string) string {
	for i, a := range args {
		if a == "-t" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func parseCreateReport(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected create report %q", s)
	}
	widx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected create report %q", s)
	}
	pidx, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected create report %q", s)
	}
	return widx, pidx, nil
}
