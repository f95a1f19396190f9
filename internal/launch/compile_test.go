package launch

import (
	"strings"
	"testing"

	"github.com/simon/muxup/internal/spec"
	"github.com/simon/muxup/internal/tmux"
)

func profileFor(t *testing.T, version string) tmux.Profile {
	t.Helper()
	v, unstable, err := tmux.ParseVersion(version)
	if err != nil {
		t.Fatalf("ParseVersion(%q) failed: %v", version, err)
	}
	p, err := tmux.ProfileFor(v, unstable)
	if err != nil {
		t.Fatalf("ProfileFor(%q) failed: %v", version, err)
	}
	return p
}

func mustResolve(t *testing.T, s *spec.Session, p tmux.Profile) Resolved {
	t.Helper()
	r, err := Resolve(s, p)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	return r
}

func devSession() *spec.Session {
	return &spec.Session{
		Name: "dev",
		Windows: []spec.Window{
			{Name: "edit", Panes: []spec.Pane{{Command: "vim"}}},
			{Name: "server", Panes: []spec.Pane{{Command: "run"}, {}}},
		},
	}
}

func kinds(p Plan) []CommandKind {
	out := make([]CommandKind, len(p.Commands))
	for i, c := range p.Commands {
		out[i] = c.Kind
	}
	return out
}

func countKind(p Plan, k CommandKind) int {
	n := 0
	for _, c := range p.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func TestCompileExistingSessionAttachesOnly(t *testing.T) {
	r := mustResolve(t, devSession(), profileFor(t, "3.0"))
	snap := tmux.SessionSnapshot{Name: "dev", Exists: true}

	plan := Compile(r, snap)
	if !plan.AttachOnly() {
		t.Fatalf("plan = %v, want attach only", kinds(plan))
	}
	if len(plan.Commands) != 1 {
		t.Fatalf("len = %d, want 1", len(plan.Commands))
	}
	c := plan.Commands[0]
	if c.Kind != KindAttach {
		t.Errorf("kind = %v, want %v", c.Kind, KindAttach)
	}
	if c.Args[0] != "attach-session" {
		t.Errorf("args = %v, want attach-session", c.Args)
	}
}

func TestCompileSessionCreateSeedsFirstWindow(t *testing.T) {
	s := &spec.Session{
		Name:    "solo",
		Windows: []spec.Window{{Name: "main", Panes: []spec.Pane{{}}}},
	}
	plan := Compile(mustResolve(t, s, profileFor(t, "3.0")), tmux.SessionSnapshot{Name: "solo"})

	if n := countKind(plan, KindCreateSession); n != 1 {
		t.Errorf("create-session count = %d, want 1", n)
	}
	if n := countKind(plan, KindCreateWindow); n != 0 {
		t.Errorf("create-window count = %d, want 0", n)
	}
	if n := countKind(plan, KindCreatePane); n != 0 {
		t.Errorf("create-pane count = %d, want 0", n)
	}

	want := []CommandKind{KindCreateSession, KindSelectWindow, KindSelectPane}
	got := kinds(plan)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestCompilePlanOrder(t *testing.T) {
	plan := Compile(mustResolve(t, devSession(), profileFor(t, "3.0")), tmux.SessionSnapshot{Name: "dev"})

	want := []CommandKind{
		KindCreateSession, // seeds edit and its pane
		KindSendCommand,   // vim
		KindCreateWindow,  // server
		KindSendCommand,   // run
		KindCreatePane,    // second server pane, no command
		KindSelectWindow,  // back to edit
		KindSelectPane,    // back to its first pane
	}
	got := kinds(plan)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}

	create := plan.Commands[0]
	for _, arg := range []string{"new-session", "-d", "-s", "dev", "-n", "edit", "-P", "-F"} {
		if !contains(create.Args, arg) {
			t.Errorf("create args = %v, missing %q", create.Args, arg)
		}
	}
	if create.Creates == nil || create.Creates.Window != 0 || create.Creates.Pane != 0 {
		t.Errorf("create target = %+v, want window 0 pane 0", create.Creates)
	}

	sendVim := plan.Commands[1]
	if got := sendVim.Args; got[len(got)-1] != "vim" || targetArg(got) != PaneTarget(0, 0).Token() {
		t.Errorf("first send = %v, want vim into %s", got, PaneTarget(0, 0).Token())
	}
	sendRun := plan.Commands[3]
	if got := sendRun.Args; got[len(got)-1] != "run" || targetArg(got) != PaneTarget(1, 0).Token() {
		t.Errorf("second send = %v, want run into %s", got, PaneTarget(1, 0).Token())
	}

	split := plan.Commands[4]
	if split.Args[0] != "split-window" || targetArg(split.Args) != PaneTarget(1, 0).Token() {
		t.Errorf("split = %v, want split-window targeting %s", split.Args, PaneTarget(1, 0).Token())
	}
	if split.Creates == nil || split.Creates.Window != 1 || split.Creates.Pane != 1 {
		t.Errorf("split target = %+v, want window 1 pane 1", split.Creates)
	}

	if got := targetArg(plan.Commands[5].Args); got != WindowTarget(0).Token() {
		t.Errorf("select-window target = %q, want %q", got, WindowTarget(0).Token())
	}
	if got := targetArg(plan.Commands[6].Args); got != PaneTarget(0, 0).Token() {
		t.Errorf("select-pane target = %q, want %q", got, PaneTarget(0, 0).Token())
	}
}

func TestCompileSendsFollowTheirPane(t *testing.T) {
	s := &spec.Session{
		Name: "big",
		Windows: []spec.Window{
			{Name: "a", Panes: []spec.Pane{{Command: "one"}, {Command: "two"}, {Command: "three"}}},
			{Name: "b", Panes: []spec.Pane{{Command: "four"}}},
		},
	}
	plan := Compile(mustResolve(t, s, profileFor(t, "3.0")), tmux.SessionSnapshot{Name: "big"})

	created := map[string]bool{}
	for _, c := range plan.Commands {
		switch c.Kind {
		case KindCreateSession, KindCreateWindow, KindCreatePane:
			created[c.Creates.Token()] = true
		case KindSendCommand:
			if tok := targetArg(c.Args); !created[tok] {
				t.Errorf("send %v targets %s before it is created", c.Args, tok)
			}
		}
	}

	// Windows stay in description order.
	var names []string
	for _, c := range plan.Commands {
		if c.Kind == KindCreateSession || c.Kind == KindCreateWindow {
			for i, a := range c.Args {
				if a == "-n" {
					names = append(names, c.Args[i+1])
				}
			}
		}
	}
	if strings.Join(names, ",") != "a,b" {
		t.Errorf("window creation order = %v, want [a b]", names)
	}
}

func TestCompileSetupBeforeCommand(t *testing.T) {
	s := &spec.Session{
		Name: "hooks",
		Windows: []spec.Window{{
			Name:  "main",
			Panes: []spec.Pane{{Command: "make run", Setup: []string{"source .env", "clear"}}},
		}},
	}
	plan := Compile(mustResolve(t, s, profileFor(t, "3.0")), tmux.SessionSnapshot{Name: "hooks"})

	var sent []string
	for _, c := range plan.Commands {
		if c.Kind == KindSendCommand {
			sent = append(sent, c.Args[len(c.Args)-1])
		}
	}
	want := []string{"source .env", "clear", "make run"}
	if strings.Join(sent, "|") != strings.Join(want, "|") {
		t.Errorf("sends = %v, want %v", sent, want)
	}
}

func TestCompileLayoutHint(t *testing.T) {
	s := &spec.Session{
		Name: "dev",
		Windows: []spec.Window{{
			Name:   "main",
			Layout: spec.LayoutMainVertical,
			Panes:  []spec.Pane{{Command: "vim"}, {}},
		}},
	}

	t.Run("supported", func(t *testing.T) {
		plan := Compile(mustResolve(t, s, profileFor(t, "3.0")), tmux.SessionSnapshot{Name: "dev"})
		var layout *Command
		for i, c := range plan.Commands {
			if c.Kind == KindSelectLayout {
				layout = &plan.Commands[i]
			}
		}
		if layout == nil {
			t.Fatalf("plan %v has no select-layout", kinds(plan))
		}
		if got := layout.Args[len(layout.Args)-1]; got != "main-vertical" {
			t.Errorf("layout arg = %q, want main-vertical", got)
		}
	})

	t.Run("downgraded", func(t *testing.T) {
		// A profile without this layout drops the hint instead of
		// failing the launch.
		p := profileFor(t, "3.0")
		p.Layouts = map[string]bool{"tiled": true}
		plan := Compile(mustResolve(t, s, p), tmux.SessionSnapshot{Name: "dev"})
		if n := countKind(plan, KindSelectLayout); n != 0 {
			t.Errorf("select-layout count = %d, want 0 after downgrade", n)
		}
		if n := countKind(plan, KindCreatePane); n != 1 {
			t.Errorf("create-pane count = %d, want 1", n)
		}
	})
}

func TestCompileStartDirForms(t *testing.T) {
	s := &spec.Session{
		Name: "dirs",
		Root: "/srv/app",
		Windows: []spec.Window{
			{Name: "edit", Panes: []spec.Pane{{Command: "vim"}}},
			{Name: "logs", Dir: "/var/log", Panes: []spec.Pane{{}}},
		},
	}

	t.Run("modern flag form", func(t *testing.T) {
		plan := Compile(mustResolve(t, s, profileFor(t, "3.0")), tmux.SessionSnapshot{Name: "dirs"})
		create := plan.Commands[0]
		if !containsPair(create.Args, "-c", "/srv/app") {
			t.Errorf("create args = %v, want -c /srv/app", create.Args)
		}
		for _, c := range plan.Commands {
			if c.Kind == KindCreateWindow && !containsPair(c.Args, "-c", "/var/log") {
				t.Errorf("window args = %v, want -c /var/log", c.Args)
			}
			if c.Kind == KindSendCommand && strings.HasPrefix(c.Args[len(c.Args)-1], "cd ") {
				t.Errorf("unexpected cd send %v with flag-form directories", c.Args)
			}
		}
	})

	t.Run("legacy cd form", func(t *testing.T) {
		plan := Compile(mustResolve(t, s, profileFor(t, "1.8")), tmux.SessionSnapshot{Name: "dirs"})
		create := plan.Commands[0]
		if contains(create.Args, "-c") || contains(create.Args, "-P") {
			t.Errorf("create args = %v, want no -c or -P on 1.8", create.Args)
		}
		if len(create.Probe) == 0 || create.Probe[0] != "display-message" {
			t.Errorf("create probe = %v, want display-message follow-up", create.Probe)
		}
		if got := plan.Commands[1].Args[len(plan.Commands[1].Args)-1]; got != "cd '/srv/app'" {
			t.Errorf("first send = %q, want cd '/srv/app'", got)
		}
		var cds []string
		for _, c := range plan.Commands {
			if c.Kind == KindSendCommand {
				if text := c.Args[len(c.Args)-1]; strings.HasPrefix(text, "cd ") {
					cds = append(cds, text)
				}
			}
		}
		if len(cds) != 2 {
			t.Errorf("cd sends = %v, want one per pane with a directory", cds)
		}
	})
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func containsPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
