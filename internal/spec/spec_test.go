package spec

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name:    "empty name",
			session: Session{Windows: []Window{{Panes: []Pane{{}}}}},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			session: Session{Name: "   ", Windows: []Window{{Panes: []Pane{{}}}}},
			wantErr: true,
		},
		{
			name:    "name with colon",
			session: Session{Name: "a:b", Windows: []Window{{Panes: []Pane{{}}}}},
			wantErr: true,
		},
		{
			name:    "name with dot",
			session: Session{Name: "a.b", Windows: []Window{{Panes: []Pane{{}}}}},
			wantErr: true,
		},
		{
			name:    "name with spaces inside",
			session: Session{Name: "Brians Session", Windows: []Window{{Panes: []Pane{{}}}}},
			wantErr: false,
		},
		{
			name:    "no windows",
			session: Session{Name: "dev"},
			wantErr: true,
		},
		{
			name:    "window without panes",
			session: Session{Name: "dev", Windows: []Window{{Name: "edit"}}},
			wantErr: true,
		},
		{
			name: "two windows",
			session: Session{Name: "dev", Windows: []Window{
				{Name: "edit", Panes: []Pane{{Command: "vim"}}},
				{Name: "server", Panes: []Pane{{Command: "run"}, {}}},
			}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalized(t *testing.T) {
	s := Session{
		Name: " dev ",
		Windows: []Window{
			{Name: "edit", Panes: []Pane{{}}},
			{Panes: []Pane{{}}},
			{Panes: []Pane{{}}},
		},
	}

	n := s.Normalized()
	if n.Name != "dev" {
		t.Errorf("Normalized name = %q, want %q", n.Name, "dev")
	}
	if got := n.Windows[0].Name; got != "edit" {
		t.Errorf("window 0 name = %q, want %q", got, "edit")
	}
	if got := n.Windows[1].Name; got != "win2" {
		t.Errorf("window 1 name = %q, want %q", got, "win2")
	}
	if got := n.Windows[2].Name; got != "win3" {
		t.Errorf("window 2 name = %q, want %q", got, "win3")
	}
	if s.Windows[1].Name != "" {
		t.Errorf("Normalized modified the receiver")
	}
}

func TestPaneDir(t *testing.T) {
	s := Session{Name: "dev", Root: "/srv/app"}

	tests := []struct {
		name   string
		window Window
		pane   Pane
		want   string
	}{
		{"pane override wins", Window{Dir: "/w"}, Pane{Dir: "/p"}, "/p"},
		{"window dir next", Window{Dir: "/w"}, Pane{}, "/w"},
		{"session root last", Window{}, Pane{}, "/srv/app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.PaneDir(tt.window, tt.pane); got != tt.want {
				t.Errorf("PaneDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		input   string
		want    Layout
		wantErr bool
	}{
		{"", LayoutNone, false},
		{"even-horizontal", LayoutEvenHorizontal, false},
		{"even-vertical", LayoutEvenVertical, false},
		{"main-horizontal", LayoutMainHorizontal, false},
		{"main-vertical", LayoutMainVertical, false},
		{"tiled", LayoutTiled, false},
		{"diagonal", LayoutNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLayout(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLayout(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLayout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
