package updating

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/internal/domain"
)

// Result summarizes one update run. From and To are nil when nothing was
// appended, so they drop out of the JSON rendering entirely.
type Result struct {
	Provider string     `json:"provider"`
	Appended int        `json:"appended"`
	Skipped  int        `json:"skipped"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// SnapshotWriter writes a full history into a fresh dated file, leaving the
// incremental history file untouched.
type SnapshotWriter interface {
	WriteSnapshot(records []domain.Record) (string, error)
}

// Service is the history updater: it reads the last recorded date, asks the
// provider for strictly newer records and appends them in date order. The
// run is idempotent because the provider is always queried from the date
// found in the file.
type Service struct {
	source    RecordSource
	repo      HistoryRepository
	exporter  Exporter
	snapshots SnapshotWriter
}

func NewService(source RecordSource, repo HistoryRepository) *Service {
	return &Service{
		source: source,
		repo:   repo,
	}
}

// WithExporter enables mirroring of appended records to a secondary sink.
func (s *Service) WithExporter(exporter Exporter) *Service {
	s.exporter = exporter
	return s
}

// WithSnapshots enables full history refreshes.
func (s *Service) WithSnapshots(snapshots SnapshotWriter) *Service {
	s.snapshots = snapshots
	return s
}

// LastUpdateDate returns the date of the last recorded row, ErrNoHistory
// when nothing was recorded yet and a *DataFormatError when the history file
// cannot be parsed.
func (s *Service) LastUpdateDate() (time.Time, error) {
	return s.repo.LastUpdateDate()
}

// UpdateHistory appends every well-formed provider record dated after the
// last recorded date. Provider failures abort the run before anything is
// written; individually malformed records are skipped with a warning.
func (s *Service) UpdateHistory(ctx context.Context) (*Result, error) {
	last, err := s.repo.LastUpdateDate()
	if err != nil && err != ErrNoHistory {
		return nil, err
	}

	logger := logrus.WithField("provider", s.source.Name())

	if err == ErrNoHistory {
		logger.Info("No history recorded yet, fetching the full sequence")
	} else {
		logger.WithField("last_date", last.Format(time.DateOnly)).Info("Fetching records after last recorded date")
	}

	candidates, err := s.source.FetchSince(ctx, last)
	if err != nil {
		if _, ok := err.(*ProviderError); ok {
			return nil, err
		}
		return nil, NewProviderError(s.source.Name(), err)
	}

	records, skipped := s.validate(candidates, last)

	result := &Result{
		Provider: s.source.Name(),
		Appended: len(records),
		Skipped:  skipped,
	}

	if len(records) == 0 {
		logger.WithField("skipped", skipped).Info("No new records to append")
		return result, nil
	}

	if err := s.repo.Append(records); err != nil {
		return nil, err
	}

	from := records[0].Date()
	to := records[len(records)-1].Date()
	result.From = &from
	result.To = &to

	logger.WithFields(logrus.Fields{
		"appended": result.Appended,
		"skipped":  result.Skipped,
		"from":     result.From.Format(time.DateOnly),
		"to":       result.To.Format(time.DateOnly),
	}).Info("History updated")

	s.export(records, logger)

	return result, nil
}

// RefreshHistory rebuilds the whole history from the provider's first record
// into a fresh dated file. The incremental history file is not touched.
func (s *Service) RefreshHistory(ctx context.Context) (string, *Result, error) {
	if s.snapshots == nil {
		return "", nil, NewProviderError(s.source.Name(), ErrSnapshotsDisabled)
	}

	candidates, err := s.source.FetchSince(ctx, time.Time{})
	if err != nil {
		if _, ok := err.(*ProviderError); ok {
			return "", nil, err
		}
		return "", nil, NewProviderError(s.source.Name(), err)
	}

	records, skipped := s.validate(candidates, time.Time{})

	path, err := s.snapshots.WriteSnapshot(records)
	if err != nil {
		return "", nil, err
	}

	result := &Result{
		Provider: s.source.Name(),
		Appended: len(records),
		Skipped:  skipped,
	}
	if len(records) > 0 {
		from := records[0].Date()
		to := records[len(records)-1].Date()
		result.From = &from
		result.To = &to
	}

	logrus.WithFields(logrus.Fields{
		"provider": s.source.Name(),
		"path":     path,
		"rows":     len(records),
		"skipped":  skipped,
	}).Info("History refreshed into a new file")

	return path, result, nil
}

// validate drops malformed, duplicated and out-of-order candidates. cursor
// starts at the last recorded date so the surviving records are strictly
// ascending and strictly newer than the existing history.
func (s *Service) validate(candidates []domain.Record, cursor time.Time) ([]domain.Record, int) {
	records := make([]domain.Record, 0, len(candidates))
	skipped := 0

	for _, candidate := range candidates {
		if candidate == nil || candidate.Date().IsZero() {
			skipped++
			logrus.WithField("provider", s.source.Name()).Warn("Skipping record with missing date")
			continue
		}

		if !candidate.Date().After(cursor) {
			skipped++
			logrus.WithFields(logrus.Fields{
				"provider": s.source.Name(),
				"date":     candidate.Date().Format(time.DateOnly),
			}).Warn("Skipping record not newer than the last recorded date")
			continue
		}

		cursor = candidate.Date()
		records = append(records, candidate)
	}

	return records, skipped
}

func (s *Service) export(records []domain.Record, logger *logrus.Entry) {
	if s.exporter == nil {
		return
	}

	if err := s.exporter.Export(records); err != nil {
		// The file is the source of truth; a failed mirror is only logged.
		logger.WithError(err).Warn("Failed to export appended records")
	}
}
