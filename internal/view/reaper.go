package view

import (
	"context"
	"log/slog"
	"time"
)

type ReaperConfig struct {
	Interval time.Duration
	IdleTTL  time.Duration
}

// Reaper tears down views the client abandoned without closing them.
type Reaper struct {
	cfg ReaperConfig
	reg *Registry
	log *slog.Logger
}

func NewReaper(cfg ReaperConfig, reg *Registry, log *slog.Logger) *Reaper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}

	return &Reaper{cfg: cfg, reg: reg, log: log}
}

func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("view reaper received shutdown signal")
			return nil

		case <-ticker.C:
			n := r.reg.ReapIdle(r.reg.cfg.Clock(), r.cfg.IdleTTL)
			if n > 0 {
				r.log.Info("reaped idle views", "count", n, "remaining", r.reg.Len())
			}
		}
	}
}
