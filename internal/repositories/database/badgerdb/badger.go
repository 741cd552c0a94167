package badgerdb

import (
	"fmt"
	"os"

	portsrepo "github.com/SscSPs/fx_rate_service/internal/core/ports/repositories"
	"github.com/dgraph-io/badger/v3"
)

// Open opens (creating if needed) a Badger database at path. An empty path opens an in-memory database.
func Open(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create badger directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return db, nil
}

// NewRepositoryProvider wires the Badger-backed repositories. Close releases the database.
func NewRepositoryProvider(db *badger.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: NewExchangeRateRepository(db),
		Close:            db.Close,
	}
}
