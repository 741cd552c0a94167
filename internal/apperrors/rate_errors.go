package apperrors

import "fmt"

// RateNotFoundError reports a conversion leg with no persisted rate.
// Side is "source" or "target"; it is empty when the lookup was not part of a conversion.
type RateNotFoundError struct {
	Code string
	Side string
}

func (e *RateNotFoundError) Error() string {
	if e.Side == "" {
		return fmt.Sprintf("rate not found for currency: %s", e.Code)
	}
	return fmt.Sprintf("rate not found for %s currency: %s", e.Side, e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *RateNotFoundError) Is(target error) bool { return target == ErrNotFound }

// ProviderError wraps a failure talking to, or decoding, the external rate provider.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("rate provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// NewProviderError wraps err as a ProviderError for operation op.
func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

// StorageError wraps a failure of the durable rate store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("rate store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError wraps err as a StorageError for operation op.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
