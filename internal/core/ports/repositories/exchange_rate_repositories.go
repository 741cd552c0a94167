package repositories

import (
	"context"

	"github.com/SscSPs/fx_rate_service/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestExchangeRate returns the row with the greatest effective date for the exact
	// (base, target) pair, or (nil, nil) when the pair has never been stored.
	FindLatestExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error)

	// ListLatestExchangeRates returns the latest row per target currency for base, ordered by target code.
	ListLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts a single rate and returns it with its identity assigned.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)

	// SaveExchangeRates inserts a whole batch atomically: either every row is stored or none is.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) ([]domain.ExchangeRate, error)
}

// SnapshotReader runs several reads against one consistent view of the store.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(reader ExchangeRateReader) error) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
	SnapshotReader
	HealthChecker
}
