package cli

import (
	"errors"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitEmptyQuery        = 2
	ExitMissingCredential = 3
)

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrEmptyQuery):
		return ExitEmptyQuery
	case errors.Is(err, domain.ErrMissingCredential):
		return ExitMissingCredential
	default:
		return ExitFailure
	}
}
