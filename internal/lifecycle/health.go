package lifecycle

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// HealthChecker exposes liveness and readiness probes.
type HealthChecker interface {
	Liveness(ctx context.Context) error
	Readiness(ctx context.Context) error
}

// ReadinessCheck reports whether dependencies can serve traffic.
type ReadinessCheck interface {
	Ready(ctx context.Context) error
}

// Probes answers liveness while the process runs and readiness from its dependency checks.
// Readiness fails once draining starts so load balancers stop routing during shutdown.
type Probes struct {
	checks   ReadinessCheck
	draining atomic.Bool
	log      *slog.Logger
}

var _ HealthChecker = (*Probes)(nil)

// NewProbes creates a new Probes instance. A nil checks is always ready.
func NewProbes(checks ReadinessCheck, log *slog.Logger) *Probes {
	if log == nil {
		log = slog.Default()
	}
	return &Probes{checks: checks, log: log}
}

// Liveness always reports success while the process can answer.
func (p *Probes) Liveness(context.Context) error {
	return nil
}

// Readiness runs the dependency checks.
func (p *Probes) Readiness(ctx context.Context) error {
	if p.draining.Load() {
		return ErrDraining
	}
	if p.checks == nil {
		return nil
	}

	if err := p.checks.Ready(ctx); err != nil {
		p.log.Warn("readiness probe failed", slog.Any("error", err))
		return err
	}
	return nil
}

// Drain makes readiness fail from now on.
func (p *Probes) Drain() {
	p.draining.Store(true)
}
