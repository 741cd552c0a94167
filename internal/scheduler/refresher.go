package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
)

// RateRefresher triggers a rate refresh on a fixed interval until its context is cancelled.
type RateRefresher struct {
	refresher portssvc.ExchangeRateRefresherSvc
	interval  time.Duration
	onStartup bool
	logger    *slog.Logger
}

// NewRateRefresher creates a RateRefresher. When onStartup is set the first refresh runs immediately.
func NewRateRefresher(refresher portssvc.ExchangeRateRefresherSvc, interval time.Duration, onStartup bool, logger *slog.Logger) *RateRefresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateRefresher{
		refresher: refresher,
		interval:  interval,
		onStartup: onStartup,
		logger:    logger.With("component", "rate_refresher"),
	}
}

// Run blocks until ctx is done. Refresh failures are logged and never stop the loop.
func (r *RateRefresher) Run(ctx context.Context) {
	r.logger.Info("Starting rate refresher", slog.Duration("interval", r.interval), slog.Bool("on_startup", r.onStartup))

	if r.onStartup {
		r.refresh(ctx)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-ctx.Done():
			r.logger.Info("Stopping rate refresher")
			return
		}
	}
}

func (r *RateRefresher) refresh(ctx context.Context) {
	outcome, err := r.refresher.RefreshRates(ctx)
	if err != nil {
		r.logger.Error("Scheduled rate refresh failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Debug("Scheduled rate refresh finished",
		slog.String("status", string(outcome.Status)),
		slog.Int("rates_saved", outcome.RatesSaved),
		slog.Bool("shared", outcome.Shared),
	)
}
