package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the launcher's instruments. A nil *Metrics is valid
// and records nothing, so callers never have to branch on telemetry
// being configured.
type Metrics struct {
	launches     metric.Int64Counter
	commands     metric.Int64Counter
	failures     metric.Int64Counter
	shortCircuit metric.Int64Counter
	planDuration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	m.launches, err = meter.Int64Counter("muxup.launches",
		metric.WithDescription("Completed launches by action"),
		metric.WithUnit("{launch}"))
	if err != nil {
		return nil, err
	}
	m.commands, err = meter.Int64Counter("muxup.commands",
		metric.WithDescription("Plan commands executed"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, err
	}
	m.failures, err = meter.Int64Counter("muxup.command_failures",
		metric.WithDescription("Plan commands rejected by tmux"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, err
	}
	m.shortCircuit, err = meter.Int64Counter("muxup.attach_short_circuits",
		metric.WithDescription("Launches that found the session already running"),
		metric.WithUnit("{launch}"))
	if err != nil {
		return nil, err
	}
	m.planDuration, err = meter.Float64Histogram("muxup.plan_duration",
		metric.WithDescription("Plan execution wall time"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Metrics) Launched(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.launches.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *Metrics) CommandRun(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.commands.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) CommandFailed(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) AttachShortCircuit(ctx context.Context) {
	if m == nil {
		return
	}
	m.shortCircuit.Add(ctx, 1)
}

func (m *Metrics) PlanTimed(ctx context.Context, action string, d time.Duration) {
	if m == nil {
		return
	}
	m.planDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("action", action)))
}
