package launch

import (
	"strings"

	"github.com/simon/muxup/internal/spec"
	"github.com/simon/muxup/internal/tmux"
)

const createReport = "#{window_index}.#{pane_index}"

// Compile turns a resolved session and an observed snapshot into a
// command plan. A session that already exists compiles to a bare
// attach; otherwise the first window and its first pane are seeded by
// the session create itself and every later unit is created in
// description order, with sends interleaved so each pane receives its
// input right after it exists.
func Compile(r Resolved, snap tmux.SessionSnapshot) Plan {
	s := r.Session
	plan := Plan{Session: s.Name}
	if snap.Exists {
		plan.Commands = append(plan.Commands, Command{
			Kind: KindAttach,
			Args: []string{"attach-session", "-t", sessionTarget(r.Profile, s.Name)},
		})
		return plan
	}

	for wi, w := range s.Windows {
		if wi == 0 {
			plan.Commands = append(plan.Commands, newSessionCommand(r, w))
		} else {
			plan.Commands = append(plan.Commands, newWindowCommand(r, wi, w))
		}
		plan.Commands = append(plan.Commands, paneSends(r, wi, 0, w, w.Panes[0])...)
		for pi := 1; pi < len(w.Panes); pi++ {
			plan.Commands = append(plan.Commands, splitPaneCommand(r, wi, pi, w, w.Panes[pi]))
			plan.Commands = append(plan.Commands, paneSends(r, wi, pi, w, w.Panes[pi])...)
		}
		if w.Layout != spec.LayoutNone {
			plan.Commands = append(plan.Commands, Command{
				Kind: KindSelectLayout,
				Args: []string{"select-layout", "-t", WindowTarget(wi).Token(), w.Layout.String()},
			})
		}
	}

	plan.Commands = append(plan.Commands,
		Command{Kind: KindSelectWindow, Args: []string{"select-window", "-t", WindowTarget(0).Token()}},
		Command{Kind: KindSelectPane, Args: []string{"select-pane", "-t", PaneTarget(0, 0).Token()}},
	)
	return plan
}

func newSessionCommand(r Resolved, w spec.Window) Command {
	args := []string{"new-session", "-d", "-s", r.Session.Name}
	if r.Profile.NamedWindows {
		args = append(args, "-n", w.Name)
	}
	args = appendDirFlag(r, args, w, w.Panes[0])
	return withCreateReport(r, Command{
		Kind:    KindCreateSession,
		Args:    args,
		Creates: targetOf(0, 0),
	})
}

func newWindowCommand(r Resolved, wi int, w spec.Window) Command {
	args := []string{"new-window", "-t", sessionTarget(r.Profile, r.Session.Name)}
	if r.Profile.NamedWindows {
		args = append(args, "-n", w.Name)
	}
	args = appendDirFlag(r, args, w, w.Panes[0])
	return withCreateReport(r, Command{
		Kind:    KindCreateWindow,
		Args:    args,
		Creates: targetOf(wi, 0),
	})
}

func splitPaneCommand(r Resolved, wi, pi int, w spec.Window, p spec.Pane) Command {
	args := []string{"split-window", "-t", PaneTarget(wi, 0).Token()}
	args = appendDirFlag(r, args, w, p)
	return withCreateReport(r, Command{
		Kind:    KindCreatePane,
		Args:    args,
		Creates: targetOf(wi, pi),
	})
}

// paneSends returns the send entries for one pane: the cd fallback when
// directories travel that way, then setup hooks, then the command.
func paneSends(r Resolved, wi, pi int, w spec.Window, p spec.Pane) []Command {
	target := PaneTarget(wi, pi).Token()
	var out []Command
	if r.DirsViaCd {
		if dir := r.Session.PaneDir(w, p); dir != "" {
			out = append(out, sendCommand(target, "cd "+shellQuote(dir)))
		}
	}
	for _, hook := range p.Setup {
		out = append(out, sendCommand(target, hook))
	}
	if p.Command != "" {
		out = append(out, sendCommand(target, p.Command))
	}
	return out
}

func sendCommand(target, text string) Command {
	return Command{
		Kind: KindSendCommand,
		Args: []string{"send-keys", "-t", target, "-l", text},
	}
}

// appendDirFlag adds -c when directories travel as create flags.
func appendDirFlag(r Resolved, args []string, w spec.Window, p spec.Pane) []string {
	if r.DirsViaCd || !r.Profile.StartDirFlag {
		return args
	}
	if dir := r.Session.PaneDir(w, p); dir != "" {
		args = append(args, "-c", dir)
	}
	return args
}

// withCreateReport makes the create entry report the indexes it
// assigned, either inline through -P -F or through a follow-up probe on
// servers that cannot print them.
func withCreateReport(r Resolved, c Command) Command {
	if r.Profile.PrintCreated {
		c.Args = append(c.Args, "-P", "-F", createReport)
		return c
	}
	c.Probe = []string{"display-message", "-p", "-t", r.Session.Name, createReport}
	return c
}

func sessionTarget(p tmux.Profile, name string) string {
	if p.ExactTargets {
		return "=" + name
	}
	return name
}

func targetOf(w, p int) *Target {
	t := PaneTarget(w, p)
	return &t
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
