package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrMissingCredential", ErrMissingCredential},
		{"ErrSyncInProgress", ErrSyncInProgress},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrRemoteFetch", ErrRemoteFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

// TestErrMissingCredential tests ErrMissingCredential error
func TestErrMissingCredential(t *testing.T) {
	assert.Equal(t, "missing credential", ErrMissingCredential.Error())
	assert.True(t, errors.Is(ErrMissingCredential, ErrMissingCredential))
	assert.False(t, errors.Is(ErrMissingCredential, ErrNotFound))
}

// TestErrSyncInProgress tests ErrSyncInProgress error
func TestErrSyncInProgress(t *testing.T) {
	assert.Equal(t, "sync in progress", ErrSyncInProgress.Error())
	assert.True(t, errors.Is(ErrSyncInProgress, ErrSyncInProgress))
	assert.False(t, errors.Is(ErrSyncInProgress, ErrNotFound))
}

// TestErrRemoteFetch tests ErrRemoteFetch error
func TestErrRemoteFetch(t *testing.T) {
	assert.Equal(t, "remote fetch failed", ErrRemoteFetch.Error())
	assert.True(t, errors.Is(ErrRemoteFetch, ErrRemoteFetch))
	assert.False(t, errors.Is(ErrRemoteFetch, ErrRateLimited))
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrMissingCredential,
		ErrSyncInProgress,
		ErrRateLimited,
		ErrRemoteFetch,
	}

	// Check that each error is unique
	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrors_WithWrapping tests error wrapping behavior
func TestErrors_WithWrapping(t *testing.T) {
	// Wrap ErrRemoteFetch the way the sync engine does
	wrappedErr := fmt.Errorf("%w: status 500", ErrRemoteFetch)

	// Should still be identifiable as ErrRemoteFetch
	assert.True(t, errors.Is(wrappedErr, ErrRemoteFetch))
	assert.Contains(t, wrappedErr.Error(), "remote fetch failed")
}

// TestErrors_InSwitchStatement tests using errors in switch statements
func TestErrors_InSwitchStatement(t *testing.T) {
	testErr := fmt.Errorf("starting run: %w", ErrSyncInProgress)

	var result string
	switch {
	case errors.Is(testErr, ErrMissingCredential):
		result = "missing credential"
	case errors.Is(testErr, ErrSyncInProgress):
		result = "sync in progress"
	default:
		result = "unknown"
	}

	assert.Equal(t, "sync in progress", result)
}

// TestErrors_ComparingWithIs tests errors.Is comparison
func TestErrors_ComparingWithIs(t *testing.T) {
	// Test direct comparison
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))

	// Test with wrapped error
	wrapped := errors.Join(errors.New("context"), ErrInvalidInput)
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))

	// Test negative case
	assert.False(t, errors.Is(ErrNotFound, ErrMissingCredential))
}
