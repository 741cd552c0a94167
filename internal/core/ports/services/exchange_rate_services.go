package services

import (
	"context"

	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// Convert converts amount from one currency to another using the latest stored rates.
	Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (*domain.ConversionResult, error)

	// RateToBase returns how many units of code one unit of the pivot currency buys.
	RateToBase(ctx context.Context, code string) (decimal.Decimal, error)

	// LatestRates lists the latest stored rate for every currency quoted against the pivot.
	LatestRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateRefresherSvc defines the refresh operation that pulls rates from the provider.
type ExchangeRateRefresherSvc interface {
	// RefreshRates fetches the provider's current table and persists it as one batch.
	RefreshRates(ctx context.Context) (*domain.RefreshOutcome, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateRefresherSvc
	// PivotCurrency returns the configured base every rate is stored against.
	PivotCurrency() string
}
