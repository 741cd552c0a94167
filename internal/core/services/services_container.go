package services

import (
	"log/slog"

	"github.com/SscSPs/fx_rate_service/internal/core/ports"
	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rate_service/internal/metrics"
	"github.com/SscSPs/fx_rate_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	provider ports.RateProvider,
	logger *slog.Logger,
	m *metrics.Metrics,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		ExchangeRate: NewExchangeRateService(cfg.PivotCurrency, repos.ExchangeRateRepo, provider, logger, m),
		Health:       NewHealthService(repos.ExchangeRateRepo),
	}
}
