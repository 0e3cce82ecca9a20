package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	assert.NoError(t, WrapError(nil, "nothing to wrap"))
}

func TestClassify(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	err := Classify(ErrPersistence, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "persistence failure: dial tcp: connection refused", err.Error())

	// Already classified errors are returned unchanged.
	assert.Same(t, err, Classify(ErrPersistence, err))

	assert.NoError(t, Classify(ErrPersistence, nil))
}

func TestTypedErrorsMatchTaxonomy(t *testing.T) {
	validation := NewValidationError("urls", nil, "must not be empty")
	assert.ErrorIs(t, validation, ErrInvalidInput)
	assert.Contains(t, validation.Error(), "urls")

	network := NewNetworkError("https://example.com", "navigation timed out", errors.New("context deadline exceeded"))
	assert.ErrorIs(t, network, ErrNavigationFailure)
	assert.Equal(t, "network error for 'https://example.com': navigation timed out: context deadline exceeded", network.Error())

	var target *NetworkError
	assert.True(t, errors.As(WrapError(network, "page 1"), &target))
	assert.Equal(t, "https://example.com", target.URL)
}
