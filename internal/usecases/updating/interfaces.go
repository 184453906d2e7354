package updating

import (
	"context"
	"time"

	"github.com/ddepe/sales-sync-api/internal/domain"
)

// RecordSource is an external provider of dated records. Implementations
// return a finite sequence in nondecreasing date order, strictly after the
// given date; a zero since means "from the beginning" and yields the full
// sequence starting at the provider's seed date.
type RecordSource interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// FetchSince returns every candidate record dated after since, oldest
	// first. A transport or auth failure aborts the whole fetch.
	FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error)
}

// HistoryRepository is the read/append surface of one history file. The
// concrete implementation is CSV-file backed; tests use an in-memory one.
type HistoryRepository interface {
	// LastUpdateDate returns the date of the last recorded row.
	// ErrNoHistory is returned when no row was ever recorded, a
	// *DataFormatError when the file exists but cannot be parsed.
	LastUpdateDate() (time.Time, error)

	// Append adds the records at the end of the history, in the given
	// order. Existing rows are never touched.
	Append(records []domain.Record) error
}

// Exporter mirrors appended records to a secondary sink. The history file
// stays the source of truth: export failures must not fail the update.
type Exporter interface {
	Export(records []domain.Record) error
}
