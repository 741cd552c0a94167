package ports

import (
	"context"

	"github.com/SscSPs/fx_rate_service/internal/core/domain"
)

// RateProvider is the external source of exchange rates.
type RateProvider interface {
	// FetchLatestRates returns the current rate table quoted from base, with the
	// provider's settlement date. Implementations must not route numbers through float64.
	FetchLatestRates(ctx context.Context, base string) (*domain.RateSnapshot, error)
}
