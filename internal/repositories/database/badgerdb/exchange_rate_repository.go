package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	"github.com/SscSPs/fx_rate_service/internal/models"
	"github.com/SscSPs/fx_rate_service/internal/utils/mapping"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

const ratePrefix = "rate/"

// ExchangeRateRepository implements the exchange rate repository ports on an embedded Badger database.
// Keys sort by pair, then effective date, then creation time, so the last key under a pair prefix is the latest rate.
type ExchangeRateRepository struct {
	db  *badger.DB
	now func() time.Time
}

// NewExchangeRateRepository creates a Badger-backed exchange rate repository. The db is owned by the caller.
func NewExchangeRateRepository(db *badger.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db, now: time.Now}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

func pairPrefix(base, target string) []byte {
	return []byte(ratePrefix + strings.ToUpper(base) + "/" + strings.ToUpper(target) + "/")
}

func basePrefix(base string) []byte {
	return []byte(ratePrefix + strings.ToUpper(base) + "/")
}

func rateKey(m models.ExchangeRate) []byte {
	return []byte(fmt.Sprintf("%s%s/%s/%s/%020d/%s",
		ratePrefix,
		m.BaseCurrencyCode,
		m.TargetCurrencyCode,
		m.DateEffective.Format(domain.DateLayout),
		m.CreatedAt.UnixNano(),
		m.ExchangeRateID,
	))
}

// SaveExchangeRate stores a single exchange rate.
func (r *ExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	saved, err := r.SaveExchangeRates(ctx, []domain.ExchangeRate{rate})
	if err != nil {
		return nil, err
	}
	return &saved[0], nil
}

// SaveExchangeRates stores every rate in a single Badger update transaction.
func (r *ExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) ([]domain.ExchangeRate, error) {
	if len(rates) == 0 {
		return []domain.ExchangeRate{}, nil
	}

	createdAt := r.now().UTC()
	modelRates := make([]models.ExchangeRate, len(rates))
	for i, rate := range rates {
		m := mapping.ToModelExchangeRate(rate)
		m.BaseCurrencyCode = strings.ToUpper(m.BaseCurrencyCode)
		m.TargetCurrencyCode = strings.ToUpper(m.TargetCurrencyCode)
		if !m.Rate.IsPositive() {
			return nil, apperrors.NewValidationError("exchange rate must be positive")
		}
		m.Rate = m.Rate.Round(domain.RatePrecision)
		m.DateEffective = domain.TruncateToDate(m.DateEffective)
		if m.ExchangeRateID == "" {
			m.ExchangeRateID = uuid.NewString()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = createdAt
		}
		modelRates[i] = m
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		for _, m := range modelRates {
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("failed to marshal exchange rate: %w", err)
			}
			if err := txn.Set(rateKey(m), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStorageError("save exchange rates", err)
	}

	return mapping.ToDomainExchangeRates(modelRates), nil
}

// FindLatestExchangeRate returns the latest rate for the pair, or nil if none exists.
func (r *ExchangeRateRepository) FindLatestExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	var found *domain.ExchangeRate
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = findLatest(txn, baseCurrencyCode, targetCurrencyCode)
		return err
	})
	return found, err
}

// ListLatestExchangeRates returns the latest rate of every target quoted against base, ordered by target.
func (r *ExchangeRateRepository) ListLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	var rates []domain.ExchangeRate
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		rates, err = listLatest(txn, baseCurrencyCode)
		return err
	})
	return rates, err
}

// ReadSnapshot runs fn inside one read-only Badger transaction.
func (r *ExchangeRateRepository) ReadSnapshot(ctx context.Context, fn func(reader portsrepo.ExchangeRateReader) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		return fn(txnReader{txn: txn})
	})
}

// Ping reports whether the database is still open.
func (r *ExchangeRateRepository) Ping(ctx context.Context) error {
	if r.db.IsClosed() {
		return apperrors.NewStorageError("ping", errors.New("badger database is closed"))
	}
	return nil
}

type txnReader struct {
	txn *badger.Txn
}

func (t txnReader) FindLatestExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	return findLatest(t.txn, baseCurrencyCode, targetCurrencyCode)
}

func (t txnReader) ListLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	return listLatest(t.txn, baseCurrencyCode)
}

func findLatest(txn *badger.Txn, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	prefix := pairPrefix(baseCurrencyCode, targetCurrencyCode)

	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	// Reverse iteration must seek past every key carrying the prefix.
	it.Seek(append(append([]byte{}, prefix...), 0xFF))
	if !it.ValidForPrefix(prefix) {
		return nil, nil
	}

	m, err := decodeItem(it.Item())
	if err != nil {
		return nil, err
	}
	domainRate := mapping.ToDomainExchangeRate(m)
	return &domainRate, nil
}

func listLatest(txn *badger.Txn, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	prefix := basePrefix(baseCurrencyCode)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	modelRates := []models.ExchangeRate{}
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		m, err := decodeItem(it.Item())
		if err != nil {
			return nil, err
		}
		// Keys ascend within a target, so a later key for the same target supersedes the earlier one.
		if n := len(modelRates); n > 0 && modelRates[n-1].TargetCurrencyCode == m.TargetCurrencyCode {
			modelRates[n-1] = m
			continue
		}
		modelRates = append(modelRates, m)
	}

	return mapping.ToDomainExchangeRates(modelRates), nil
}

func decodeItem(item *badger.Item) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &m)
	})
	if err != nil {
		return models.ExchangeRate{}, apperrors.NewStorageError("decode exchange rate "+string(item.Key()), err)
	}
	return m, nil
}
