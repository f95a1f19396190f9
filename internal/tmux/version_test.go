package tmux

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input        string
		wantMajor    int
		wantMinor    int
		wantSuffix   string
		wantUnstable bool
		wantErr      bool
	}{
		{input: "tmux 1.8", wantMajor: 1, wantMinor: 8},
		{input: "tmux 2.0", wantMajor: 2, wantMinor: 0},
		{input: "tmux 2.3", wantMajor: 2, wantMinor: 3},
		{input: "tmux 3.0", wantMajor: 3, wantMinor: 0},
		{input: "tmux 3.3a", wantMajor: 3, wantMinor: 3, wantSuffix: "a"},
		{input: "3.1b", wantMajor: 3, wantMinor: 1, wantSuffix: "b"},
		{input: "tmux master", wantUnstable: true},
		{input: "tmux next-3.6", wantUnstable: true},
		{input: "tmux openbsd-6.9", wantErr: true},
		{input: "screen 4.0", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, unstable, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if unstable != tt.wantUnstable {
				t.Errorf("unstable = %v, want %v", unstable, tt.wantUnstable)
			}
			if v.Major != tt.wantMajor || v.Minor != tt.wantMinor || v.Suffix != tt.wantSuffix {
				t.Errorf("version = %d.%d%q, want %d.%d%q",
					v.Major, v.Minor, v.Suffix, tt.wantMajor, tt.wantMinor, tt.wantSuffix)
			}
		})
	}
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		version          string
		wantGen          Generation
		wantStartDirFlag bool
		wantExactTargets bool
		wantPrintCreated bool
		wantErr          bool
	}{
		{version: "1.8", wantGen: Gen18},
		{version: "1.9", wantGen: Gen18},
		{version: "2.0", wantGen: Gen20, wantStartDirFlag: true, wantPrintCreated: true},
		{version: "2.2", wantGen: Gen20, wantStartDirFlag: true, wantPrintCreated: true},
		{version: "2.3", wantGen: Gen23, wantStartDirFlag: true, wantExactTargets: true, wantPrintCreated: true},
		{version: "2.9a", wantGen: Gen23, wantStartDirFlag: true, wantExactTargets: true, wantPrintCreated: true},
		{version: "3.0", wantGen: Gen30, wantStartDirFlag: true, wantExactTargets: true, wantPrintCreated: true},
		{version: "3.5", wantGen: Gen30, wantStartDirFlag: true, wantExactTargets: true, wantPrintCreated: true},
		{version: "1.7", wantErr: true},
		{version: "0.9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v, unstable, err := ParseVersion(tt.version)
			if err != nil {
				t.Fatalf("ParseVersion(%q) failed: %v", tt.version, err)
			}
			p, err := ProfileFor(v, unstable)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProfileFor(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if p.Generation != tt.wantGen {
				t.Errorf("generation = %v, want %v", p.Generation, tt.wantGen)
			}
			if p.StartDirFlag != tt.wantStartDirFlag {
				t.Errorf("StartDirFlag = %v, want %v", p.StartDirFlag, tt.wantStartDirFlag)
			}
			if p.ExactTargets != tt.wantExactTargets {
				t.Errorf("ExactTargets = %v, want %v", p.ExactTargets, tt.wantExactTargets)
			}
			if p.PrintCreated != tt.wantPrintCreated {
				t.Errorf("PrintCreated = %v, want %v", p.PrintCreated, tt.wantPrintCreated)
			}
			if !p.CdWorkdir || !p.NamedWindows {
				t.Errorf("profile %v lost baseline capabilities", p.Generation)
			}
			if !p.SupportsLayout("main-vertical") {
				t.Errorf("profile %v should support main-vertical", p.Generation)
			}
		})
	}
}

func TestProfileForUnstable(t *testing.T) {
	v, unstable, err := ParseVersion("tmux next-3.6")
	if err != nil || !unstable {
		t.Fatalf("ParseVersion(next-3.6) = %v, %v, %v", v, unstable, err)
	}
	p, err := ProfileFor(v, unstable)
	if err != nil {
		t.Fatalf("ProfileFor() failed: %v", err)
	}
	if !p.Unstable {
		t.Error("Unstable = false, want true")
	}
	if p.Generation != Gen30 {
		t.Errorf("generation = %v, want %v", p.Generation, Gen30)
	}
	if !p.StartDirFlag || !p.ExactTargets || !p.PrintCreated {
		t.Error("unstable build should get the most permissive profile")
	}
}

func TestProbe(t *testing.T) {
	t.Run("healthy binary", func(t *testing.T) {
		r := &fakeRunner{outputs: map[string]string{"-V": "tmux 3.3a"}}
		p, err := Probe(r)
		if err != nil {
			t.Fatalf("Probe() failed: %v", err)
		}
		if p.Generation != Gen30 {
			t.Errorf("generation = %v, want %v", p.Generation, Gen30)
		}
	})

	t.Run("broken binary", func(t *testing.T) {
		r := &fakeRunner{errs: map[string]error{"-V": fmt.Errorf("exec format error")}}
		_, err := Probe(r)
		var pe *ProbeError
		if !errors.As(err, &pe) {
			t.Fatalf("Probe() error = %v, want ProbeError", err)
		}
	})

	t.Run("unparsable version", func(t *testing.T) {
		r := &fakeRunner{outputs: map[string]string{"-V": "tmux trunk-build"}}
		_, err := Probe(r)
		var pe *ProbeError
		if !errors.As(err, &pe) {
			t.Fatalf("Probe() error = %v, want ProbeError", err)
		}
	})

	t.Run("too old", func(t *testing.T) {
		r := &fakeRunner{outputs: map[string]string{"-V": "tmux 1.6"}}
		_, err := Probe(r)
		var pe *ProbeError
		if !errors.As(err, &pe) {
			t.Fatalf("Probe() error = %v, want ProbeError", err)
		}
	})
}
