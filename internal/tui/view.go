package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Adaptive colors for light/dark terminal backgrounds
	accentColor = lipgloss.AdaptiveColor{Light: "#D6249F", Dark: "#FF79C6"}
	greenColor  = lipgloss.AdaptiveColor{Light: "#116620", Dark: "#50FA7B"}
	yellowColor = lipgloss.AdaptiveColor{Light: "#7D5A00", Dark: "#F1FA8C"}
	redColor    = lipgloss.AdaptiveColor{Light: "#B31D28", Dark: "#FF5555"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#6272A4"}
	hlBgColor   = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#333333"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			PaddingLeft(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(hlBgColor)

	statusRunning = lipgloss.NewStyle().
			Foreground(greenColor)

	statusAttached = lipgloss.NewStyle().
			Foreground(yellowColor)

	statusIdle = lipgloss.NewStyle().
			Foreground(dimColor)

	errStyle = lipgloss.NewStyle().
			Foreground(redColor).
			PaddingLeft(1)

	confirmStyle = lipgloss.NewStyle().
			Foreground(redColor).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			PaddingLeft(1)
)

// pad right-pads s with spaces up to width, measured in terminal cells.
func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// ago renders a coarse relative timestamp, or "-" for never.
func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func status(it Item) string {
	switch {
	case it.Attached:
		return statusAttached.Render("attached")
	case it.Running:
		return statusRunning.Render("running")
	default:
		return statusIdle.Render("-")
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("muxup"))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(m.projectDir))
	b.WriteString("\n\n")

	b.WriteString(" " + m.input.View() + "\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n\n")
	}

	if len(m.filtered) == 0 {
		if len(m.items) == 0 {
			b.WriteString(helpStyle.Render("no projects yet; create one with: muxup new <name>") + "\n")
		} else {
			b.WriteString(helpStyle.Render("no matches") + "\n")
		}
	} else {
		nameWidth, sessionWidth := 7, 7
		for _, it := range m.filtered {
			if w := lipgloss.Width(it.Name); w > nameWidth {
				nameWidth = w
			}
			if w := lipgloss.Width(it.Session); w > sessionWidth {
				sessionWidth = w
			}
		}

		b.WriteString(headerStyle.Render(
			pad("PROJECT", nameWidth+2) + pad("SESSION", sessionWidth+2) + pad("STATUS", 10) + pad("WIN", 5) + "LAST OPENED",
		))
		b.WriteString("\n")

		for i, it := range m.filtered {
			row := pad(it.Name, nameWidth+2) +
				pad(it.Session, sessionWidth+2) +
				pad(status(it), 10) +
				pad(fmt.Sprintf("%d", it.Windows), 5) +
				ago(it.LastOpen)
			if i == m.cursor {
				b.WriteString(cursorStyle.Render(" >") + selectedRowStyle.Render(row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.confirm != "" {
		b.WriteString(confirmStyle.Render(fmt.Sprintf("kill session for %q? press y to confirm", m.confirm)))
	} else {
		b.WriteString(helpStyle.Render("enter open · ctrl+e edit · ctrl+k kill · esc clear · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}
