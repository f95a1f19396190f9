package tmux

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Generation buckets tmux releases by command syntax. Everything past
// the probe works in terms of a Generation's Profile, never raw version
// numbers.
type Generation int

const (
	Gen18 Generation = iota // 1.8 up to 2.0
	Gen20                   // 2.0 up to 2.3
	Gen23                   // 2.3 up to 3.0
	Gen30                   // 3.0 and later
)

func (g Generation) String() string {
	switch g {
	case Gen18:
		return "1.8"
	case Gen20:
		return "2.0"
	case Gen23:
		return "2.3"
	case Gen30:
		return "3.0"
	default:
		return "unknown"
	}
}

// Version is a parsed `tmux -V` report.
type Version struct {
	Major  int
	Minor  int
	Suffix string // trailing letter, as in 3.3a
	Raw    string
}

func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("%d.%d%s", v.Major, v.Minor, v.Suffix)
}

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)([a-z])?$`)

// ParseVersion parses `tmux -V` output. Development builds (master,
// next-X.Y) parse cleanly with unstable set and no numeric fields.
func ParseVersion(out string) (v Version, unstable bool, err error) {
	s := strings.TrimSpace(out)
	s = strings.TrimPrefix(s, "tmux ")
	if s == "master" || strings.HasPrefix(s, "next-") {
		return Version{Raw: s}, true, nil
	}
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false, fmt.Errorf("unrecognized tmux version %q", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	return Version{Major: major, Minor: minor, Suffix: m[3], Raw: s}, false, nil
}

// Profile is the capability set of one tmux generation.
type Profile struct {
	Version    Version
	Generation Generation
	Unstable   bool

	// StartDirFlag: new-session, new-window and split-window accept -c.
	StartDirFlag bool
	// CdWorkdir: working directories may instead be set by sending a
	// cd line into the pane.
	CdWorkdir bool
	// NamedWindows: windows can be named at creation with -n.
	NamedWindows bool
	// ExactTargets: session targets accept the literal-match '=' prefix.
	ExactTargets bool
	// PrintCreated: create commands accept -P -F to report the indexes
	// of what they made.
	PrintCreated bool
	// Layouts holds the names select-layout accepts.
	Layouts map[string]bool
}

// SupportsLayout reports whether select-layout accepts the given name.
func (p Profile) SupportsLayout(name string) bool {
	return p.Layouts[name]
}

var allLayouts = map[string]bool{
	"even-horizontal": true,
	"even-vertical":   true,
	"main-horizontal": true,
	"main-vertical":   true,
	"tiled":           true,
}

// profiles is the per-generation capability table. Syntax decisions are
// made here once instead of scattering version checks around.
var profiles = map[Generation]Profile{
	Gen18: {
		Generation:   Gen18,
		CdWorkdir:    true,
		NamedWindows: true,
		Layouts:      allLayouts,
	},
	Gen20: {
		Generation:   Gen20,
		StartDirFlag: true,
		CdWorkdir:    true,
		NamedWindows: true,
		PrintCreated: true,
		Layouts:      allLayouts,
	},
	Gen23: {
		Generation:   Gen23,
		StartDirFlag: true,
		CdWorkdir:    true,
		NamedWindows: true,
		ExactTargets: true,
		PrintCreated: true,
		Layouts:      allLayouts,
	},
	Gen30: {
		Generation:   Gen30,
		StartDirFlag: true,
		CdWorkdir:    true,
		NamedWindows: true,
		ExactTargets: true,
		PrintCreated: true,
		Layouts:      allLayouts,
	},
}

// ProfileFor maps a parsed version to its capability profile. Unstable
// builds get the newest profile. Versions before 1.8 are rejected.
func ProfileFor(v Version, unstable bool) (Profile, error) {
	if unstable {
		p := profiles[Gen30]
		p.Version = v
		p.Unstable = true
		return p, nil
	}
	gen, err := generationFor(v)
	if err != nil {
		return Profile{}, err
	}
	p := profiles[gen]
	p.Version = v
	return p, nil
}

func generationFor(v Version) (Generation, error) {
	switch {
	case v.Major < 1 || (v.Major == 1 && v.Minor < 8):
		return 0, fmt.Errorf("tmux %s is too old, need 1.8 or later", v)
	case v.Major == 1:
		return Gen18, nil
	case v.Major == 2 && v.Minor < 3:
		return Gen20, nil
	case v.Major == 2:
		return Gen23, nil
	default:
		return Gen30, nil
	}
}

// Probe asks tmux for its version and resolves the capability profile.
// Any failure to run or understand `tmux -V` is a ProbeError.
func Probe(r Runner) (Profile, error) {
	out, err := r.Run("-V")
	if err != nil {
		return Profile{}, &ProbeError{Reason: "cannot run tmux -V", Err: err}
	}
	v, unstable, err := ParseVersion(out)
	if err != nil {
		return Profile{}, &ProbeError{Reason: err.Error()}
	}
	if unstable {
		log.Warnf("tmux reports development build %q, assuming newest command syntax", v.Raw)
	}
	p, err := ProfileFor(v, unstable)
	if err != nil {
		return Profile{}, &ProbeError{Reason: err.Error()}
	}
	return p, nil
}
