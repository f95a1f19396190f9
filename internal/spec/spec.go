package spec

import (
	"fmt"
	"strings"
)

// Session is the validated in-memory description of one desired tmux
// session. Window order is creation order; the first pane of each window
// is the pane tmux creates implicitly with the window.
type Session struct {
	Name    string
	Root    string // base working directory, may be empty
	Windows []Window
}

// Window describes one window of a session.
type Window struct {
	Name   string // optional; empty means an index-derived default
	Dir    string // working directory, inherits the session root when empty
	Layout Layout
	Panes  []Pane
}

// Pane describes one pane of a window.
type Pane struct {
	Command string   // startup command, may be empty
	Dir     string   // working directory override, may be empty
	Setup   []string // hook commands sent before Command
}

// Validate checks the session invariants: a non-empty name without
// target-syntax characters, at least one window, at least one pane per
// window.
func (s *Session) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("session name is empty")
	}
	if strings.ContainsAny(name, ":.") {
		return fmt.Errorf("session name %q contains ':' or '.'", name)
	}
	if len(s.Windows) == 0 {
		return fmt.Errorf("session %q has no windows", name)
	}
	for i, w := range s.Windows {
		if len(w.Panes) == 0 {
			return fmt.Errorf("window %s has no panes", windowLabel(w, i))
		}
	}
	return nil
}

// Normalized returns a copy with empty window names replaced by their
// index-derived defaults. The receiver is not modified.
func (s *Session) Normalized() Session {
	out := Session{Name: strings.TrimSpace(s.Name), Root: s.Root}
	out.Windows = make([]Window, len(s.Windows))
	copy(out.Windows, s.Windows)
	for i := range out.Windows {
		if out.Windows[i].Name == "" {
			out.Windows[i].Name = fmt.Sprintf("win%d", i+1)
		}
	}
	return out
}

// PaneDir returns the effective working directory of pane p in window w:
// the pane override, else the window directory, else the session root.
func (s *Session) PaneDir(w Window, p Pane) string {
	if p.Dir != "" {
		return p.Dir
	}
	if w.Dir != "" {
		return w.Dir
	}
	return s.Root
}

// UsesDirs reports whether any entity of the session asks for a working
// directory.
func (s *Session) UsesDirs() bool {
	if s.Root != "" {
		return true
	}
	for _, w := range s.Windows {
		if w.Dir != "" {
			return true
		}
		for _, p := range w.Panes {
			if p.Dir != "" {
				return true
			}
		}
	}
	return false
}

// UsesNamedWindows reports whether any window carries an explicit name.
func (s *Session) UsesNamedWindows() bool {
	for _, w := range s.Windows {
		if w.Name != "" {
			return true
		}
	}
	return false
}

func windowLabel(w Window, i int) string {
	if w.Name != "" {
		return fmt.Sprintf("%q", w.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}
