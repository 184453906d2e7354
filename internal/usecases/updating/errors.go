package updating

import (
	"errors"
	"fmt"
)

// ErrSnapshotsDisabled is returned when a full refresh is requested but no
// snapshot writer was configured.
var ErrSnapshotsDisabled = errors.New("history snapshots are not configured")

// ErrNoHistory marks a missing or empty history file. It is not a failure:
// the next update simply starts from the configured seed date.
var ErrNoHistory = errors.New("no history recorded yet")

// DataFormatError reports a history file whose rows cannot be parsed. The
// update aborts and nothing is written.
type DataFormatError struct {
	Path    string
	Details string
	Err     error
}

func (e *DataFormatError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("history file %s is malformed: %s", e.Path, e.Details)
	}
	return fmt.Sprintf("history file %s is malformed", e.Path)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

func NewDataFormatError(path, details string, err error) *DataFormatError {
	return &DataFormatError{
		Path:    path,
		Details: details,
		Err:     err,
	}
}

// ProviderError reports an unrecoverable failure of the external record
// provider (network, auth). The history file is left unchanged.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
