package dto

import (
	"time"

	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	"github.com/SscSPs/fx_rate_service/internal/utils"
)

// ConvertRequest defines the query parameters for a conversion.
// Amount stays a string so it is parsed as an exact decimal.
type ConvertRequest struct {
	From   string `form:"from" binding:"required,currency_code"`
	To     string `form:"to" binding:"required,currency_code"`
	Amount string `form:"amount" binding:"required,numeric"`
}

// ConversionResponse defines the structure for conversion results. Numbers are decimal strings.
type ConversionResponse struct {
	FromCurrency    string `json:"fromCurrency" example:"USD"`
	ToCurrency      string `json:"toCurrency" example:"GBP"`
	OriginalAmount  string `json:"originalAmount" example:"100"`
	ConvertedAmount string `json:"convertedAmount" example:"77.27"`
	ExchangeRate    string `json:"exchangeRate" example:"0.772727"`
}

// ToConversionResponse converts a domain.ConversionResult to ConversionResponse DTO
func ToConversionResponse(result *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		FromCurrency:    result.FromCurrency,
		ToCurrency:      result.ToCurrency,
		OriginalAmount:  result.OriginalAmount.String(),
		ConvertedAmount: utils.FormatAmount(result.ConvertedAmount, domain.AmountPrecision),
		ExchangeRate:    utils.FormatWithPrecision(result.ExchangeRate, domain.RatePrecision),
	}
}

// RateNotFoundResponse is returned when one leg of a conversion has no stored rate.
type RateNotFoundResponse struct {
	Error    string `json:"error" example:"rate not found for target currency: JPY"`
	Currency string `json:"currency" example:"JPY"`
	Side     string `json:"side,omitempty" example:"target"`
}

// RefreshResponse reports the outcome of a refresh trigger.
type RefreshResponse struct {
	Status     string `json:"status" example:"succeeded"`
	Message    string `json:"message" example:"Exchange rates refreshed"`
	Base       string `json:"base" example:"EUR"`
	Date       string `json:"date,omitempty" example:"2024-05-10"`
	RatesSaved int    `json:"ratesSaved" example:"31"`
	Reason     string `json:"reason,omitempty"`
	Shared     bool   `json:"shared"`
}

// ToRefreshResponse converts a domain.RefreshOutcome to RefreshResponse DTO
func ToRefreshResponse(outcome *domain.RefreshOutcome) RefreshResponse {
	resp := RefreshResponse{
		Status:     string(outcome.Status),
		Base:       outcome.Base,
		RatesSaved: outcome.RatesSaved,
		Reason:     outcome.Reason,
		Shared:     outcome.Shared,
	}
	if !outcome.Date.IsZero() {
		resp.Date = outcome.Date.Format(domain.DateLayout)
	}
	if outcome.Status == domain.RefreshSucceeded {
		resp.Message = "Exchange rates refreshed"
	} else {
		resp.Message = "Exchange rate refresh failed"
	}
	return resp
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID     string    `json:"exchangeRateID"`
	BaseCurrencyCode   string    `json:"baseCurrencyCode" example:"EUR"`
	TargetCurrencyCode string    `json:"targetCurrencyCode" example:"USD"`
	Rate               string    `json:"rate" example:"1.081200"`
	DateEffective      string    `json:"dateEffective" example:"2024-05-10"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:     rate.ExchangeRateID,
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		Rate:               utils.FormatWithPrecision(rate.Rate, domain.RatePrecision),
		DateEffective:      rate.DateEffective.Format(domain.DateLayout),
		CreatedAt:          rate.CreatedAt,
	}
}

// LatestRatesResponse lists the latest rate of every currency quoted against Base.
type LatestRatesResponse struct {
	Base  string                 `json:"base" example:"EUR"`
	Rates []ExchangeRateResponse `json:"rates"`
}

// ToLatestRatesResponse converts the latest stored rates to a LatestRatesResponse DTO.
func ToLatestRatesResponse(base string, rates []domain.ExchangeRate) LatestRatesResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(rate)
	}
	return LatestRatesResponse{Base: base, Rates: responses}
}
