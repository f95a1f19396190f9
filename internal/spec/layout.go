package spec

import "fmt"

// Layout is a cosmetic arrangement hint for a window's panes.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutEvenHorizontal
	LayoutEvenVertical
	LayoutMainHorizontal
	LayoutMainVertical
	LayoutTiled
)

// String returns the tmux name of the layout, or "" for LayoutNone.
func (l Layout) String() string {
	switch l {
	case LayoutEvenHorizontal:
		return "even-horizontal"
	case LayoutEvenVertical:
		return "even-vertical"
	case LayoutMainHorizontal:
		return "main-horizontal"
	case LayoutMainVertical:
		return "main-vertical"
	case LayoutTiled:
		return "tiled"
	default:
		return ""
	}
}

// ParseLayout maps a tmux layout name to its Layout value. The empty
// string parses to LayoutNone.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "":
		return LayoutNone, nil
	case "even-horizontal":
		return LayoutEvenHorizontal, nil
	case "even-vertical":
		return LayoutEvenVertical, nil
	case "main-horizontal":
		return LayoutMainHorizontal, nil
	case "main-vertical":
		return LayoutMainVertical, nil
	case "tiled":
		return LayoutTiled, nil
	}
	return LayoutNone, fmt.Errorf("unknown layout %q", s)
}
