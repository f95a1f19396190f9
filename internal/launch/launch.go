package launch

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/simon/muxup/internal/otel"
	"github.com/simon/muxup/internal/spec"
	"github.com/simon/muxup/internal/state"
	"github.com/simon/muxup/internal/tmux"
)

// Options configures one launch.
type Options struct {
	// Runner defaults to the local tmux binary.
	Runner tmux.Runner
	// Project is the history label, defaulting to the session name.
	Project  string
	Detached bool
	Store    *state.Store
	Metrics  *otel.Metrics
}

// Result reports what a launch did.
type Result struct {
	Plan     Plan
	Profile  tmux.Profile
	Created  bool
	Duration time.Duration
}

// Launch probes tmux, compiles the plan for the session and runs it.
// An existing session is attached, never rebuilt; a fresh one is built
// and then attached unless Detached is set.
func Launch(ctx context.Context, s *spec.Session, opts Options) (Result, error) {
	start := time.Now()
	runner := opts.Runner
	if runner == nil {
		local, err := tmux.NewLocalRunner()
		if err != nil {
			return Result{}, err
		}
		runner = local
	}

	profile, err := tmux.Probe(runner)
	if err != nil {
		return Result{}, err
	}
	resolved, err := Resolve(s, profile)
	if err != nil {
		return Result{}, err
	}
	snap, err := tmux.Snapshot(runner, profile, resolved.Session.Name)
	if err != nil {
		return Result{}, err
	}

	plan := Compile(resolved, snap)
	res := Result{Plan: plan, Profile: profile, Created: !plan.AttachOnly()}
	log.WithFields(log.Fields{
		"session":  resolved.Session.Name,
		"commands": len(plan.Commands),
		"attach":   plan.AttachOnly(),
		"tmux":     profile.Version.String(),
	}).Debug("plan compiled")

	action := "create"
	if plan.AttachOnly() {
		action = "attach"
	}
	record := func(d time.Duration) {
		opts.Metrics.Launched(ctx, action)
		opts.Metrics.PlanTimed(ctx, action, d)
		if opts.Store == nil {
			return
		}
		project := opts.Project
		if project == "" {
			project = resolved.Session.Name
		}
		err := opts.Store.Record(state.Launch{
			Project:     project,
			Session:     resolved.Session.Name,
			Action:      action,
			TmuxVersion: profile.Version.String(),
			Commands:    len(plan.Commands),
			Duration:    d,
			At:          time.Now(),
		})
		if err != nil {
			log.WithError(err).Warn("could not record launch history")
		}
	}

	if plan.AttachOnly() {
		// Attaching may replace this process outright, so the history
		// row has to land before the plan runs.
		opts.Metrics.AttachShortCircuit(ctx)
		record(time.Since(start))
	}
	exec := &Executor{Runner: runner, Detached: opts.Detached, Metrics: opts.Metrics}
	if err := exec.Execute(ctx, plan); err != nil {
		return res, err
	}
	res.Duration = time.Since(start)
	if !plan.AttachOnly() {
		record(res.Duration)
	}

	// A fresh session is attached after the build so a second run of
	// the same project lands in the same place as the first.
	if res.Created && !opts.Detached {
		if err := runner.Attach(resolved.Session.Name); err != nil {
			return res, err
		}
	}
	return res, nil
}
