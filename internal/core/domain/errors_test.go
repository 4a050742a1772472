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
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrEmptyContent", ErrEmptyContent},
		{"ErrSearchUnavailable", ErrSearchUnavailable},
		{"ErrMissingCredential", ErrMissingCredential},
		{"ErrEmptyQuery", ErrEmptyQuery},
		{"ErrUnknownProvider", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrMissingCredential, ErrEmptyQuery))
	assert.False(t, errors.Is(ErrEmptyQuery, ErrMissingCredential))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("compose query: %w", ErrEmptyQuery)
	assert.True(t, errors.Is(err, ErrEmptyQuery))
	assert.Equal(t, "compose query: model returned empty query", err.Error())
}
