package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/simon/muxup/internal/config"
	"github.com/simon/muxup/internal/state"
	"github.com/simon/muxup/internal/tmux"
)

const pollInterval = 1500 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Item is one picker row: a project file plus whatever the tmux server
// currently knows about its session.
type Item struct {
	Name     string // project stem, the argument to muxup open
	Session  string // session name the project launches
	Windows  int
	Running  bool
	Attached bool
	LastOpen time.Time // zero when the project was never launched
}

type itemsMsg struct {
	items []Item
	err   error
}

type killMsg struct {
	err error
}

// Model drives the project picker. When the user picks an action the
// picker quits and leaves OpenProject or EditProject set for the caller.
type Model struct {
	projectDir string
	runner     tmux.Runner
	store      *state.Store

	items    []Item
	filtered []Item
	cursor   int
	input    textinput.Model
	confirm  string // project awaiting kill confirmation, empty otherwise
	err      error
	width    int
	height   int
	quitting bool

	watch chan struct{}

	OpenProject string
	EditProject string
}

func NewModel(projectDir string, runner tmux.Runner, store *state.Store) Model {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "/ "
	input.CharLimit = 64
	input.Focus()

	return Model{
		projectDir: projectDir,
		runner:     runner,
		store:      store,
		input:      input,
		watch:      make(chan struct{}, 1),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh,
		watchCmd(m.projectDir, m.watch),
		waitWatch(m.watch),
		tickCmd(),
		textinput.Blink,
	)
}

func (m Model) refresh() tea.Msg {
	items, err := loadItems(m.projectDir, m.runner, m.store)
	return itemsMsg{items: items, err: err}
}

func loadItems(dir string, runner tmux.Runner, store *state.Store) ([]Item, error) {
	names, err := config.ListProjects(dir)
	if err != nil {
		return nil, err
	}

	sessions, err := tmux.ListSessions(runner)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]tmux.SessionInfo, len(sessions))
	for _, s := range sessions {
		byName[s.Name] = s
	}

	var history map[string]state.Launch
	if store != nil {
		if history, err = store.LastByProject(); err != nil {
			log.WithFields(log.Fields{"error": err}).Debug("history unavailable")
		}
	}

	items := make([]Item, 0, len(names))
	for _, name := range names {
		item := Item{Name: name, Session: name}
		if proj, perr := config.LoadProject(dir, name); perr == nil {
			item.Session = proj.Name
			item.Windows = len(proj.Windows)
		} else {
			log.WithFields(log.Fields{"project": name, "error": perr}).Debug("project file unreadable")
		}
		if info, ok := byName[item.Session]; ok {
			item.Running = true
			item.Attached = info.Attached
		}
		if last, ok := history[name]; ok {
			item.LastOpen = last.At
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Running != items[j].Running {
			return items[i].Running
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemsMsg:
		m.items = msg.items
		m.err = msg.err
		m.applyFilter()
		return m, nil

	case killMsg:
		m.err = msg.err
		return m, m.refresh

	case watchMsg:
		return m, tea.Batch(m.refresh, waitWatch(m.watch))

	case tickMsg:
		return m, tea.Batch(m.refresh, tickCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != "" {
		if s := msg.String(); s == "y" || s == "Y" {
			cmd := m.killSelected()
			m.confirm = ""
			return m, cmd
		}
		m.confirm = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.CtrlC):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Quit):
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}

	case key.Matches(msg, keys.Escape):
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}
		m.input.SetValue("")
		m.applyFilter()
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if item := m.selected(); item != nil {
			m.OpenProject = item.Name
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.Edit):
		if item := m.selected(); item != nil {
			m.EditProject = item.Name
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.Kill):
		if item := m.selected(); item != nil && item.Running {
			m.confirm = item.Name
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) killSelected() tea.Cmd {
	item := m.selected()
	if item == nil || !item.Running {
		return nil
	}
	session := item.Session
	runner := m.runner
	return func() tea.Msg {
		_, err := runner.Run("kill-session", "-t", session)
		return killMsg{err: err}
	}
}

func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.items
	} else {
		filtered := make([]Item, 0, len(m.items))
		for _, it := range m.items {
			if strings.Contains(strings.ToLower(it.Name), query) ||
				strings.Contains(strings.ToLower(it.Session), query) {
				filtered = append(filtered, it)
			}
		}
		m.filtered = filtered
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m Model) selected() *Item {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	item := m.filtered[m.cursor]
	return &item
}
