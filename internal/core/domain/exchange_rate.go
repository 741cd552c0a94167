package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// RatePrecision is the number of fractional digits kept for rates.
	RatePrecision int32 = 6
	// AmountPrecision is the number of fractional digits kept for converted amounts.
	AmountPrecision int32 = 2
)

// ExchangeRate is one observed rate: 1 unit of BaseCurrencyCode = Rate units of TargetCurrencyCode,
// effective on DateEffective (the provider's settlement date).
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	DateEffective      time.Time       `json:"dateEffective"`
	AuditFields
}

// ConversionResult is the outcome of converting Amount from one currency to another.
type ConversionResult struct {
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
}

// RateSnapshot is a rate table returned by the external provider, anchored at Base.
type RateSnapshot struct {
	Base  string
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// RefreshStatus is the terminal state of a refresh run.
type RefreshStatus string

const (
	RefreshSucceeded RefreshStatus = "succeeded"
	RefreshFailed    RefreshStatus = "failed"
)

// RefreshOutcome describes what a refresh run did.
type RefreshOutcome struct {
	Status     RefreshStatus `json:"status"`
	Base       string        `json:"base"`
	Date       time.Time     `json:"date,omitempty"`
	RatesSaved int           `json:"ratesSaved"`
	Reason     string        `json:"reason,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	// Shared is true when one refresh run served more than one concurrent caller.
	Shared bool `json:"shared"`
}
