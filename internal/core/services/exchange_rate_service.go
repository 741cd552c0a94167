package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	"github.com/SscSPs/fx_rate_service/internal/core/ports"
	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rate_service/internal/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Conversion outcomes reported to metrics.
const (
	conversionSucceeded = "success"
	conversionInvalid   = "invalid"
	conversionNotFound  = "not_found"
	conversionFailed    = "error"
)

var one = decimal.NewFromInt(1)

// ExchangeRateService refreshes pivot-based rates from the provider and converts between any two stored currencies.
type ExchangeRateService struct {
	BaseService
	pivot    string
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	provider ports.RateProvider
	metrics  *metrics.Metrics

	refreshGroup singleflight.Group
	now          func() time.Time
}

// NewExchangeRateService creates a new ExchangeRateService. m may be nil.
func NewExchangeRateService(
	pivot string,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	provider ports.RateProvider,
	logger *slog.Logger,
	m *metrics.Metrics,
) *ExchangeRateService {
	return &ExchangeRateService{
		BaseService: BaseService{Logger: logger},
		pivot:       domain.NormalizeCurrencyCode(pivot).String(),
		rateRepo:    rateRepo,
		provider:    provider,
		metrics:     m,
		now:         time.Now,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// PivotCurrency returns the base currency every stored rate is quoted against.
func (s *ExchangeRateService) PivotCurrency() string {
	return s.pivot
}

// RefreshRates fetches the provider's table for the pivot and stores it as one batch.
// Concurrent calls share a single run. The outcome is always returned, also on failure.
func (s *ExchangeRateService) RefreshRates(ctx context.Context) (*domain.RefreshOutcome, error) {
	// The run outlives any one caller's cancellation since others may be waiting on it.
	runCtx := context.WithoutCancel(ctx)

	v, err, shared := s.refreshGroup.Do(s.pivot, func() (any, error) {
		return s.refresh(runCtx)
	})

	outcome := *v.(*domain.RefreshOutcome)
	outcome.Shared = shared
	return &outcome, err
}

func (s *ExchangeRateService) refresh(ctx context.Context) (*domain.RefreshOutcome, error) {
	outcome := &domain.RefreshOutcome{
		Base:      s.pivot,
		StartedAt: s.now().UTC(),
	}

	batch, date, err := s.fetchBatch(ctx)
	if err == nil {
		outcome.Date = date
		var saved []domain.ExchangeRate
		saved, err = s.rateRepo.SaveExchangeRates(ctx, batch)
		outcome.RatesSaved = len(saved)
	}

	outcome.FinishedAt = s.now().UTC()
	elapsed := outcome.FinishedAt.Sub(outcome.StartedAt)

	if err != nil {
		outcome.Status = domain.RefreshFailed
		outcome.RatesSaved = 0
		outcome.Reason = err.Error()
		s.metrics.ObserveRefresh(string(outcome.Status), 0, elapsed)
		s.LogError(ctx, err, "Exchange rate refresh failed",
			slog.String("base", s.pivot),
			slog.Duration("elapsed", elapsed),
		)
		return outcome, err
	}

	outcome.Status = domain.RefreshSucceeded
	s.metrics.ObserveRefresh(string(outcome.Status), outcome.RatesSaved, elapsed)
	s.LogInfo(ctx, "Exchange rates refreshed",
		slog.String("base", s.pivot),
		slog.String("date", outcome.Date.Format(domain.DateLayout)),
		slog.Int("rates_saved", outcome.RatesSaved),
		slog.Duration("elapsed", elapsed),
	)
	return outcome, nil
}

// fetchBatch turns the provider's table into the rows to store, self-rate included.
func (s *ExchangeRateService) fetchBatch(ctx context.Context) ([]domain.ExchangeRate, time.Time, error) {
	snapshot, err := s.provider.FetchLatestRates(ctx, s.pivot)
	if err != nil {
		return nil, time.Time{}, err
	}
	if snapshot == nil || len(snapshot.Rates) == 0 {
		return nil, time.Time{}, apperrors.NewProviderError("fetch latest rates", errors.New("response contained no rates"))
	}
	if snapshot.Date.IsZero() {
		return nil, time.Time{}, apperrors.NewProviderError("fetch latest rates", errors.New("response has no date"))
	}
	if base := domain.NormalizeCurrencyCode(snapshot.Base).String(); base != "" && base != s.pivot {
		return nil, time.Time{}, apperrors.NewProviderError("fetch latest rates",
			fmt.Errorf("rates quoted from %s, expected %s", base, s.pivot))
	}

	date := domain.TruncateToDate(snapshot.Date)
	batch := make([]domain.ExchangeRate, 0, len(snapshot.Rates)+1)
	for _, code := range slices.Sorted(maps.Keys(snapshot.Rates)) {
		target := domain.NormalizeCurrencyCode(code).String()
		if target == s.pivot {
			continue
		}
		rate := snapshot.Rates[code].Round(domain.RatePrecision)
		if !rate.IsPositive() {
			return nil, time.Time{}, apperrors.NewProviderError("fetch latest rates",
				fmt.Errorf("rate for %s rounds to %s", target, rate.StringFixed(domain.RatePrecision)))
		}
		batch = append(batch, domain.ExchangeRate{
			BaseCurrencyCode:   s.pivot,
			TargetCurrencyCode: target,
			Rate:               rate,
			DateEffective:      date,
		})
	}

	batch = append(batch, domain.ExchangeRate{
		BaseCurrencyCode:   s.pivot,
		TargetCurrencyCode: s.pivot,
		Rate:               one,
		DateEffective:      date,
	})
	return batch, date, nil
}

// RateToBase returns how many units of code one unit of the pivot buys.
func (s *ExchangeRateService) RateToBase(ctx context.Context, code string) (decimal.Decimal, error) {
	normalized := domain.NormalizeCurrencyCode(code)
	if !normalized.Valid() {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("invalid currency code: %q", code))
	}
	return s.legRate(ctx, s.rateRepo, normalized.String(), "")
}

func (s *ExchangeRateService) legRate(ctx context.Context, reader portsrepo.ExchangeRateReader, code string, side domain.ConversionSide) (decimal.Decimal, error) {
	if code == s.pivot {
		return one, nil
	}

	rate, err := reader.FindLatestExchangeRate(ctx, s.pivot, code)
	if err != nil {
		return decimal.Zero, err
	}
	if rate == nil {
		return decimal.Zero, &apperrors.RateNotFoundError{Code: code, Side: string(side)}
	}
	return rate.Rate, nil
}

// Convert converts amount from fromCode to toCode through the pivot using the latest stored rates.
func (s *ExchangeRateService) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	result, err := s.convert(ctx, fromCode, toCode, amount)
	switch {
	case err == nil:
		s.metrics.ObserveConversion(conversionSucceeded)
	case errors.Is(err, apperrors.ErrValidation):
		s.metrics.ObserveConversion(conversionInvalid)
	case errors.Is(err, apperrors.ErrNotFound):
		s.metrics.ObserveConversion(conversionNotFound)
	default:
		s.metrics.ObserveConversion(conversionFailed)
		s.LogError(ctx, err, "Conversion failed",
			slog.String("from", fromCode),
			slog.String("to", toCode),
		)
	}
	return result, err
}

func (s *ExchangeRateService) convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	from := domain.NormalizeCurrencyCode(fromCode)
	if !from.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid source currency code: %q", fromCode))
	}
	to := domain.NormalizeCurrencyCode(toCode)
	if !to.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid target currency code: %q", toCode))
	}
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("amount must not be negative")
	}

	result := &domain.ConversionResult{
		FromCurrency:   from.String(),
		ToCurrency:     to.String(),
		OriginalAmount: amount,
	}

	if from == to {
		result.ExchangeRate = one
		result.ConvertedAmount = amount
		return result, nil
	}

	var rateFrom, rateTo decimal.Decimal
	err := s.rateRepo.ReadSnapshot(ctx, func(reader portsrepo.ExchangeRateReader) error {
		var err error
		if rateFrom, err = s.legRate(ctx, reader, from.String(), domain.SideSource); err != nil {
			return err
		}
		rateTo, err = s.legRate(ctx, reader, to.String(), domain.SideTarget)
		return err
	})
	if err != nil {
		return nil, err
	}

	cross := rateTo.DivRound(rateFrom, domain.RatePrecision)
	result.ExchangeRate = cross
	result.ConvertedAmount = amount.Mul(cross).Round(domain.AmountPrecision)

	s.LogDebug(ctx, "Converted amount",
		slog.String("from", result.FromCurrency),
		slog.String("to", result.ToCurrency),
		slog.String("rate", cross.StringFixed(domain.RatePrecision)),
	)
	return result, nil
}

// LatestRates lists the latest stored rate of every currency quoted against the pivot.
func (s *ExchangeRateService) LatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListLatestExchangeRates(ctx, s.pivot)
	if err != nil {
		s.LogError(ctx, err, "Failed to list latest exchange rates", slog.String("base", s.pivot))
		return nil, err
	}
	return rates, nil
}
