package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the persisted audit columns shared by stored rows.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
}

// ExchangeRate is the stored row for one (base, target, date) observation.
// Rate is kept at a fixed scale of 6 fractional digits.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`     // Primary Key (UUID)
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`   // always the pivot
	TargetCurrencyCode string          `json:"targetCurrencyCode"` // quoted currency
	Rate               decimal.Decimal `json:"rate"`
	DateEffective      time.Time       `json:"dateEffective"`
	AuditFields
}
