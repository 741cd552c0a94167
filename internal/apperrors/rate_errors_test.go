package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestRateNotFoundError(t *testing.T) {
	err := fmt.Errorf("convert: %w", &apperrors.RateNotFoundError{Code: "JPY", Side: "target"})

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrStorage))

	var rnf *apperrors.RateNotFoundError
	if assert.True(t, errors.As(err, &rnf)) {
		assert.Equal(t, "JPY", rnf.Code)
		assert.Equal(t, "target", rnf.Side)
	}
	assert.Contains(t, err.Error(), "target currency: JPY")
}

func TestProviderAndStorageErrors(t *testing.T) {
	cause := errors.New("connection refused")

	perr := apperrors.NewProviderError("fetch latest", cause)
	assert.True(t, errors.Is(perr, apperrors.ErrProvider))
	assert.True(t, errors.Is(perr, cause))
	assert.False(t, errors.Is(perr, apperrors.ErrStorage))

	serr := apperrors.NewStorageError("save batch", cause)
	assert.True(t, errors.Is(serr, apperrors.ErrStorage))
	assert.True(t, errors.Is(serr, cause))
	assert.Equal(t, "rate store: save batch: connection refused", serr.Error())
}

func TestAppErrorHelpers(t *testing.T) {
	assert.True(t, errors.Is(apperrors.NewNotFoundError("missing"), apperrors.ErrNotFound))
	assert.True(t, errors.Is(apperrors.NewValidationError("bad"), apperrors.ErrValidation))

	wrapped := apperrors.NewAppError(500, "failed to begin transaction", errors.New("boom"))
	assert.Equal(t, "failed to begin transaction: boom", wrapped.Error())
}
