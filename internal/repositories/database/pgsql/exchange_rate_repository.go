package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	"github.com/SscSPs/fx_rate_service/internal/models"
	"github.com/SscSPs/fx_rate_service/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectExchangeRateColumns = `
	SELECT
		exchange_rate_id, base_currency_code, target_currency_code, rate, date_effective, created_at
	FROM exchange_rates`

const insertExchangeRate = `
	INSERT INTO exchange_rates (
		exchange_rate_id, base_currency_code, target_currency_code, rate, date_effective, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
	now func() time.Time
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a single exchange rate.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	saved, err := r.SaveExchangeRates(ctx, []domain.ExchangeRate{rate})
	if err != nil {
		return nil, err
	}
	return &saved[0], nil
}

// SaveExchangeRates inserts every rate inside one transaction.
func (r *PgxExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) ([]domain.ExchangeRate, error) {
	if len(rates) == 0 {
		return []domain.ExchangeRate{}, nil
	}

	modelRates := make([]models.ExchangeRate, len(rates))
	for i, rate := range rates {
		modelRate, err := r.prepare(rate)
		if err != nil {
			return nil, err
		}
		modelRates[i] = modelRate
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range modelRates {
		_, err = tx.Exec(ctx, insertExchangeRate,
			m.ExchangeRateID, m.BaseCurrencyCode, m.TargetCurrencyCode,
			m.Rate, m.DateEffective, m.CreatedAt,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return nil, apperrors.NewStorageError("insert exchange rate "+m.BaseCurrencyCode+"/"+m.TargetCurrencyCode, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, err
	}

	return mapping.ToDomainExchangeRates(modelRates), nil
}

// prepare normalizes codes, validates the rate and assigns identity and audit fields.
func (r *PgxExchangeRateRepository) prepare(rate domain.ExchangeRate) (models.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	m.BaseCurrencyCode = strings.ToUpper(m.BaseCurrencyCode)
	m.TargetCurrencyCode = strings.ToUpper(m.TargetCurrencyCode)
	if !m.Rate.IsPositive() {
		return models.ExchangeRate{}, apperrors.NewValidationError("exchange rate must be positive")
	}
	m.Rate = m.Rate.Round(domain.RatePrecision)
	m.DateEffective = domain.TruncateToDate(m.DateEffective)
	if m.ExchangeRateID == "" {
		m.ExchangeRateID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now().UTC()
	}
	return m, nil
}

// FindLatestExchangeRate retrieves the most recent exchange rate for the pair, or nil if none exists.
func (r *PgxExchangeRateRepository) FindLatestExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	return findLatest(ctx, r.Pool, baseCurrencyCode, targetCurrencyCode)
}

// ListLatestExchangeRates retrieves the latest rate of every target quoted against base.
func (r *PgxExchangeRateRepository) ListLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	return listLatest(ctx, r.Pool, baseCurrencyCode)
}

// ReadSnapshot runs fn against a repeatable-read, read-only transaction.
func (r *PgxExchangeRateRepository) ReadSnapshot(ctx context.Context, fn func(reader portsrepo.ExchangeRateReader) error) error {
	tx, err := r.BeginReadSnapshot(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := fn(txReader{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// txReader serves reads from an open transaction.
type txReader struct {
	tx pgx.Tx
}

func (t txReader) FindLatestExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	return findLatest(ctx, t.tx, baseCurrencyCode, targetCurrencyCode)
}

func (t txReader) ListLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	return listLatest(ctx, t.tx, baseCurrencyCode)
}

func findLatest(ctx context.Context, q querier, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	query := selectExchangeRateColumns + `
		WHERE base_currency_code = $1 AND target_currency_code = $2
		ORDER BY date_effective DESC, created_at DESC
		LIMIT 1;
	`

	var modelRate models.ExchangeRate
	err := q.QueryRow(ctx, query, strings.ToUpper(baseCurrencyCode), strings.ToUpper(targetCurrencyCode)).Scan(
		&modelRate.ExchangeRateID, &modelRate.BaseCurrencyCode, &modelRate.TargetCurrencyCode,
		&modelRate.Rate, &modelRate.DateEffective, &modelRate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("find latest exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

func listLatest(ctx context.Context, q querier, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	query := selectExchangeRateColumns + `
		WHERE base_currency_code = $1
		ORDER BY target_currency_code, date_effective DESC, created_at DESC;
	`
	// DISTINCT ON keeps the first row of each target in the ORDER BY above.
	query = strings.Replace(query, "SELECT", "SELECT DISTINCT ON (target_currency_code)", 1)

	rows, err := q.Query(ctx, query, strings.ToUpper(baseCurrencyCode))
	if err != nil {
		return nil, apperrors.NewStorageError("list latest exchange rates", err)
	}
	defer rows.Close()

	modelRates := []models.ExchangeRate{}
	for rows.Next() {
		var modelRate models.ExchangeRate
		err := rows.Scan(
			&modelRate.ExchangeRateID, &modelRate.BaseCurrencyCode, &modelRate.TargetCurrencyCode,
			&modelRate.Rate, &modelRate.DateEffective, &modelRate.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewStorageError("scan exchange rate", err)
		}
		modelRates = append(modelRates, modelRate)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate exchange rates", err)
	}

	return mapping.ToDomainExchangeRates(modelRates), nil
}
