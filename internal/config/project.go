package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simon/muxup/internal/spec"
)

// stringOrList accepts a YAML scalar or a sequence of scalars.
type stringOrList []string

func (s *stringOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = stringOrList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(stringOrList, 0, len(node.Content))
		for _, c := range node.Content {
			if c.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected a string", c.Line)
			}
			if c.Tag == "!!null" {
				continue
			}
			out = append(out, c.Value)
		}
		*s = out
		return nil
	}
	return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
}

// rawProject mirrors the project file schema. Window entries are kept
// as raw nodes because they come in several shapes: a bare name, a
// name-to-command pair, or a name with a nested body.
type rawProject struct {
	Name      string       `yaml:"name"`
	Root      string       `yaml:"root"`
	Pre       stringOrList `yaml:"pre"`
	PreWindow stringOrList `yaml:"pre_window"`
	Windows   []yaml.Node  `yaml:"windows"`
}

// Parse builds a session from project file contents. The file stem is
// the fallback session name. The pre hooks land in the first pane of
// the first window, before that window's own hooks.
func Parse(data []byte, fallbackName string) (*spec.Session, error) {
	var raw rawProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if len(raw.Windows) == 0 {
		return nil, fmt.Errorf("project %q has no windows", fallbackName)
	}

	s := &spec.Session{Name: raw.Name, Root: ExpandPath(raw.Root)}
	if s.Name == "" {
		s.Name = fallbackName
	}
	for i := range raw.Windows {
		w, err := parseWindow(&raw.Windows[i], raw.PreWindow)
		if err != nil {
			return nil, err
		}
		s.Windows = append(s.Windows, w)
	}
	if len(raw.Pre) > 0 {
		first := &s.Windows[0].Panes[0]
		first.Setup = append(append([]string{}, raw.Pre...), first.Setup...)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseWindow(node *yaml.Node, preWindow []string) (spec.Window, error) {
	var w spec.Window
	switch node.Kind {
	case yaml.ScalarNode:
		// Bare entry: just a window name.
		w.Name = node.Value
		w.Panes = []spec.Pane{newPane(preWindow)}
		return w, nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return w, fmt.Errorf("line %d: a window mapping takes exactly one key", node.Line)
		}
		key, val := node.Content[0], node.Content[1]
		w.Name = key.Value
		switch val.Kind {
		case yaml.ScalarNode:
			p := newPane(preWindow)
			if val.Tag != "!!null" {
				p.Command = val.Value
			}
			w.Panes = []spec.Pane{p}
			return w, nil
		case yaml.MappingNode:
			return parseWindowBody(key.Value, val, preWindow)
		}
		return w, fmt.Errorf("line %d: window %q has an unsupported value", val.Line, w.Name)
	}
	return w, fmt.Errorf("line %d: unsupported window entry", node.Line)
}

func parseWindowBody(name string, node *yaml.Node, preWindow []string) (spec.Window, error) {
	w := spec.Window{Name: name}
	var panes []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "layout":
			layout, err := spec.ParseLayout(val.Value)
			if err != nil {
				return w, fmt.Errorf("window %q: %w", name, err)
			}
			w.Layout = layout
		case "path":
			w.Dir = ExpandPath(val.Value)
		case "panes":
			if val.Kind == yaml.SequenceNode {
				panes = val.Content
			} else if val.Tag != "!!null" {
				return w, fmt.Errorf("window %q: panes must be a list", name)
			}
		default:
			return w, fmt.Errorf("window %q: unknown key %q", name, key.Value)
		}
	}
	for _, pn := range panes {
		p, err := parsePane(pn, preWindow)
		if err != nil {
			return w, fmt.Errorf("window %q: %w", name, err)
		}
		w.Panes = append(w.Panes, p)
	}
	if len(w.Panes) == 0 {
		w.Panes = []spec.Pane{newPane(preWindow)}
	}
	return w, nil
}

func parsePane(node *yaml.Node, preWindow []string) (spec.Pane, error) {
	p := newPane(preWindow)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			p.Command = node.Value
		}
		return p, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "run":
				p.Command = val.Value
			case "path":
				p.Dir = ExpandPath(val.Value)
			default:
				return p, fmt.Errorf("line %d: unknown pane key %q", key.Line, key.Value)
			}
		}
		return p, nil
	}
	return p, fmt.Errorf("line %d: unsupported pane entry", node.Line)
}

func newPane(preWindow []string) spec.Pane {
	var p spec.Pane
	if len(preWindow) > 0 {
		p.Setup = append([]string{}, preWindow...)
	}
	return p
}

// LoadProject reads and parses the named project from dir. A name
// containing a path separator or an extension is treated as an explicit
// file path.
func LoadProject(dir, name string) (*spec.Session, error) {
	path, err := ProjectPath(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, stem(path))
}

// ProjectPath resolves a project name to its file.
func ProjectPath(dir, name string) (string, error) {
	if strings.ContainsAny(name, "/.") {
		p := ExpandPath(name)
		if _, err := os.Stat(p); err != nil {
			return "", err
		}
		return p, nil
	}
	for _, ext := range []string{".yml", ".yaml"} {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("project %q not found in %s", name, dir)
}

// ListProjects returns the project names in dir, sorted. A missing
// directory is just empty.
func ListProjects(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Template is the starter content for new project files.
const Template = `# Project definition: one tmux session, its windows and panes.
# The session is named after this file unless name is set.
#
# name: my-session
# pre: source .env          # sent to the first pane before anything else
# pre_window: cd ./src      # sent to every pane first

root: ~/
windows:
  - editor:
      layout: main-vertical
      panes:
        - vim
        -
  - shell: ls
`

// CreateProject writes a fresh project file and returns its path.
func CreateProject(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".yml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project %q already exists at %s", name, path)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
