package tmux

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SessionInfo is one row of list-sessions output.
type SessionInfo struct {
	Name     string
	Attached bool
	Created  time.Time
}

const sessionFormat = "#{session_name}|#{session_attached}|#{session_created}"

// ListSessions returns every session the server knows about. No server
// means no sessions, not an error.
func ListSessions(r Runner) ([]SessionInfo, error) {
	out, err := r.Run("list-sessions", "-F", sessionFormat)
	if err != nil {
		if errors.Is(err, ErrNoServer) {
			return nil, nil
		}
		return nil, err
	}
	var sessions []SessionInfo
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		var created time.Time
		if ts, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			created = time.Unix(ts, 0)
		}
		sessions = append(sessions, SessionInfo{
			Name:     parts[0],
			Attached: parts[1] != "0",
			Created:  created,
		})
	}
	return sessions, nil
}

// WindowInfo is the observed shape of one window.
type WindowInfo struct {
	Index int
	Name  string
	Panes []int
}

// SessionSnapshot is the observed state of one session at probe time.
// An absent session is the zero shape with Exists false.
type SessionSnapshot struct {
	Name    string
	Exists  bool
	Windows []WindowInfo
}

// Snapshot inspects the named session. A missing session or an idle
// server yields an empty snapshot; only an unusable channel is an
// error, reported as a ProbeError.
func Snapshot(r Runner, p Profile, name string) (SessionSnapshot, error) {
	snap := SessionSnapshot{Name: name}
	exists, err := sessionExists(r, p, name)
	if err != nil {
		return snap, &ProbeError{Reason: fmt.Sprintf("cannot inspect session %q", name), Err: err}
	}
	if !exists {
		return snap, nil
	}
	snap.Exists = true

	target := name
	if p.ExactTargets {
		target = "=" + name
	}
	wout, err := r.Run("list-windows", "-t", target, "-F", "#{window_index}|#{window_name}")
	if err != nil {
		return snap, &ProbeError{Reason: fmt.Sprintf("cannot list windows of %q", name), Err: err}
	}
	byIndex := map[int]*WindowInfo{}
	var order []int
	for _, line := range strings.Split(wout, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		idx, aerr := strconv.Atoi(parts[0])
		if aerr != nil {
			continue
		}
		w := &WindowInfo{Index: idx}
		if len(parts) == 2 {
			w.Name = parts[1]
		}
		byIndex[idx] = w
		order = append(order, idx)
	}

	pout, err := r.Run("list-panes", "-s", "-t", target, "-F", "#{window_index}|#{pane_index}")
	if err != nil {
		return snap, &ProbeError{Reason: fmt.Sprintf("cannot list panes of %q", name), Err: err}
	}
	for _, line := range strings.Split(pout, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}
		widx, werr := strconv.Atoi(parts[0])
		pidx, perr := strconv.Atoi(parts[1])
		if werr != nil || perr != nil {
			continue
		}
		w, ok := byIndex[widx]
		if !ok {
			w = &WindowInfo{Index: widx}
			byIndex[widx] = w
			order = append(order, widx)
		}
		w.Panes = append(w.Panes, pidx)
	}

	sort.Ints(order)
	for _, idx := range order {
		sort.Ints(byIndex[idx].Panes)
		snap.Windows = append(snap.Windows, *byIndex[idx])
	}
	return snap, nil
}

func sessionExists(r Runner, p Profile, name string) (bool, error) {
	if p.ExactTargets {
		_, err := r.Run("has-session", "-t", "="+name)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, ErrNoServer) || errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	// Older servers prefix-match -t names, so filter client side.
	sessions, err := ListSessions(r)
	if err != nil {
		return false, err
	}
	for _, s := range sessions {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}
