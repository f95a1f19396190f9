package launch

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/simon/muxup/internal/spec"
	"github.com/simon/muxup/internal/tmux"
)

// UnsupportedError reports a session requirement the probed tmux cannot
// express in any form.
type UnsupportedError struct {
	Feature string
	Version string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("tmux %s does not support %s", e.Version, e.Feature)
}

// Resolved pairs a normalized session with the capability profile and
// the command forms chosen for it.
type Resolved struct {
	Session spec.Session
	Profile tmux.Profile
	// DirsViaCd means working directories are established by sending a
	// cd line into each pane instead of create-time flags.
	DirsViaCd bool
}

// Resolve validates the session against the profile. A required
// capability the profile lacks is an error; cosmetic layout hints it
// cannot express are dropped.
func Resolve(s *spec.Session, p tmux.Profile) (Resolved, error) {
	if err := s.Validate(); err != nil {
		return Resolved{}, err
	}
	if s.UsesNamedWindows() && !p.NamedWindows {
		return Resolved{}, &UnsupportedError{Feature: "named windows", Version: p.Version.String()}
	}

	r := Resolved{Session: s.Normalized(), Profile: p}
	if s.UsesDirs() {
		switch {
		case p.StartDirFlag:
		case p.CdWorkdir:
			r.DirsViaCd = true
		default:
			return Resolved{}, &UnsupportedError{Feature: "working directories", Version: p.Version.String()}
		}
	}
	for i := range r.Session.Windows {
		w := &r.Session.Windows[i]
		if w.Layout != spec.LayoutNone && !p.SupportsLayout(w.Layout.String()) {
			log.WithFields(log.Fields{
				"window": w.Name,
				"layout": w.Layout.String(),
			}).Debug("dropping layout hint this tmux cannot apply")
			w.Layout = spec.LayoutNone
		}
	}
	return r, nil
}
