package pgsql

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	"github.com/SscSPs/fx_rate_service/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ExchangeRateRepositoryTestSuite runs against a real PostgreSQL database named by TEST_PGSQL_URL.
type ExchangeRateRepositoryTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxExchangeRateRepository
	ctx  context.Context
}

func TestExchangeRateRepositoryTestSuite(t *testing.T) {
	if os.Getenv("TEST_PGSQL_URL") == "" {
		t.Skip("TEST_PGSQL_URL not set; skipping PostgreSQL integration tests")
	}
	suite.Run(t, new(ExchangeRateRepositoryTestSuite))
}

func (s *ExchangeRateRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	url := os.Getenv("TEST_PGSQL_URL")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(s.T(), database.RunMigrations(url, "file://../../../../migrations", logger))

	pool, err := database.NewPgxPool(s.ctx, url, true)
	require.NoError(s.T(), err)
	s.pool = pool
	s.repo = newPgxExchangeRateRepository(pool)
}

func (s *ExchangeRateRepositoryTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *ExchangeRateRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE exchange_rates")
	require.NoError(s.T(), err)
}

func rate(target, value string, date time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{
		BaseCurrencyCode:   "EUR",
		TargetCurrencyCode: target,
		Rate:               decimal.RequireFromString(value),
		DateEffective:      date,
	}
}

func (s *ExchangeRateRepositoryTestSuite) TestSaveAndFindLatest() {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	saved, err := s.repo.SaveExchangeRate(s.ctx, rate("usd", "1.0812345678", day))
	s.Require().NoError(err)
	s.NotEmpty(saved.ExchangeRateID)
	s.Equal("USD", saved.TargetCurrencyCode)
	s.True(saved.Rate.Equal(decimal.RequireFromString("1.081235")))

	found, err := s.repo.FindLatestExchangeRate(s.ctx, "EUR", "USD")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(saved.ExchangeRateID, found.ExchangeRateID)
	s.True(found.Rate.Equal(decimal.RequireFromString("1.081235")))
	s.Equal(day, found.DateEffective.UTC())
}

func (s *ExchangeRateRepositoryTestSuite) TestFindLatestPrefersNewestDate() {
	older := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := s.repo.SaveExchangeRates(s.ctx, []domain.ExchangeRate{
		rate("USD", "1.10", newer),
		rate("USD", "1.05", older),
	})
	s.Require().NoError(err)

	found, err := s.repo.FindLatestExchangeRate(s.ctx, "EUR", "USD")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.True(found.Rate.Equal(decimal.RequireFromString("1.10")))
}

func (s *ExchangeRateRepositoryTestSuite) TestFindLatestMissingPair() {
	found, err := s.repo.FindLatestExchangeRate(s.ctx, "EUR", "JPY")
	s.NoError(err)
	s.Nil(found)
}

func (s *ExchangeRateRepositoryTestSuite) TestSaveRejectsNonPositiveRate() {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := s.repo.SaveExchangeRates(s.ctx, []domain.ExchangeRate{
		rate("USD", "1.1", day),
		rate("GBP", "0", day),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	rates, err := s.repo.ListLatestExchangeRates(s.ctx, "EUR")
	s.NoError(err)
	s.Empty(rates)
}

func (s *ExchangeRateRepositoryTestSuite) TestListLatestAndSnapshot() {
	older := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := s.repo.SaveExchangeRates(s.ctx, []domain.ExchangeRate{
		rate("USD", "1.05", older),
		rate("USD", "1.10", newer),
		rate("GBP", "0.85", newer),
	})
	s.Require().NoError(err)

	rates, err := s.repo.ListLatestExchangeRates(s.ctx, "EUR")
	s.Require().NoError(err)
	s.Require().Len(rates, 2)
	s.Equal("GBP", rates[0].TargetCurrencyCode)
	s.Equal("USD", rates[1].TargetCurrencyCode)
	s.True(rates[1].Rate.Equal(decimal.RequireFromString("1.10")))

	var usd, gbp *domain.ExchangeRate
	err = s.repo.ReadSnapshot(s.ctx, func(reader portsrepo.ExchangeRateReader) error {
		var err error
		if usd, err = reader.FindLatestExchangeRate(s.ctx, "EUR", "USD"); err != nil {
			return err
		}
		gbp, err = reader.FindLatestExchangeRate(s.ctx, "EUR", "GBP")
		return err
	})
	s.Require().NoError(err)
	s.Require().NotNil(usd)
	s.Require().NotNil(gbp)
	s.True(gbp.Rate.Equal(decimal.RequireFromString("0.85")))
}

func (s *ExchangeRateRepositoryTestSuite) TestPing() {
	s.NoError(s.repo.Ping(s.ctx))
}
