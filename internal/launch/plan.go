package launch

import "fmt"

// CommandKind classifies one plan entry.
type CommandKind int

const (
	KindCreateSession CommandKind = iota
	KindCreateWindow
	KindCreatePane
	KindSendCommand
	KindSelectLayout
	KindSelectWindow
	KindSelectPane
	KindAttach
)

func (k CommandKind) String() string {
	switch k {
	case KindCreateSession:
		return "create-session"
	case KindCreateWindow:
		return "create-window"
	case KindCreatePane:
		return "create-pane"
	case KindSendCommand:
		return "send-command"
	case KindSelectLayout:
		return "select-layout"
	case KindSelectWindow:
		return "select-window"
	case KindSelectPane:
		return "select-pane"
	case KindAttach:
		return "attach"
	default:
		return "unknown"
	}
}

// Target names a window or pane by its position in the session
// description. Real tmux indexes are assigned by the server, so plans
// reference targets through placeholder tokens until execution.
type Target struct {
	Window int
	Pane   int // -1 for a window-level target
}

// WindowTarget references window w as a whole.
func WindowTarget(w int) Target { return Target{Window: w, Pane: -1} }

// PaneTarget references pane p of window w.
func PaneTarget(w, p int) Target { return Target{Window: w, Pane: p} }

// Token is the placeholder spliced into argv until the real index is
// known.
func (t Target) Token() string {
	if t.Pane < 0 {
		return fmt.Sprintf("@{w%d}", t.Window)
	}
	return fmt.Sprintf("@{w%d.p%d}", t.Window, t.Pane)
}

// Command is one plan entry: an argv for tmux plus what it creates, if
// anything. Target arguments may be placeholder tokens.
type Command struct {
	Kind CommandKind
	Args []string
	// Creates is set on create entries. Creating a session or a window
	// also creates that window's first pane.
	Creates *Target
	// Probe is a follow-up argv reporting the created indexes, used
	// when the create itself cannot print them.
	Probe []string
}

// Plan is the ordered command sequence for one launch.
type Plan struct {
	Session  string
	Commands []Command
}

// AttachOnly reports whether the plan just attaches to a session that
// already exists.
func (p Plan) AttachOnly() bool {
	return len(p.Commands) == 1 && p.Commands[0].Kind == KindAttach
}
