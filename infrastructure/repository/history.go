package repository

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ddepe/sales-sync-api/infrastructure/storage/csvstore"
	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating"
)

// HistoryRepository is the file-backed read/append store of one history.
// It implements updating.HistoryRepository and updating.SnapshotWriter.
type HistoryRepository interface {
	LastUpdateDate() (time.Time, error)
	Append(records []domain.Record) error
	WriteSnapshot(records []domain.Record) (string, error)
	Summary() (*domain.HistorySummary, error)
}

type csvHistoryRepository struct {
	table      *csvstore.Table
	name       string
	header     []string
	dateLayout string
}

func newCSVHistoryRepository(table *csvstore.Table, name string, header []string, dateLayout string) HistoryRepository {
	return &csvHistoryRepository{
		table:      table,
		name:       name,
		header:     header,
		dateLayout: dateLayout,
	}
}

// LastUpdateDate reads the date of the last row of the history file.
func (r *csvHistoryRepository) LastUpdateDate() (time.Time, error) {
	row, ok, err := r.table.LastRow()
	if err != nil {
		return time.Time{}, updating.NewDataFormatError(r.table.Path(), "unreadable rows", err)
	}

	if !ok {
		return time.Time{}, updating.ErrNoHistory
	}

	return r.parseRowDate(row)
}

// Append writes the records to the end of the history file in one flush, so
// a failing run never leaves a partially written record behind.
func (r *csvHistoryRepository) Append(records []domain.Record) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Row())
	}

	if err := r.table.Append(rows); err != nil {
		return fmt.Errorf("error appending to %s history: %w", r.name, err)
	}

	return nil
}

// WriteSnapshot writes the records into a fresh dated file next to the
// history file, e.g. aggregated_sales_20240830.csv.
func (r *csvHistoryRepository) WriteSnapshot(records []domain.Record) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Row())
	}

	path := datedPath(r.table.Path(), time.Now())
	if err := csvstore.WriteAll(path, r.header, rows); err != nil {
		return "", fmt.Errorf("error writing %s snapshot: %w", r.name, err)
	}

	return path, nil
}

// Summary returns row count and date range of the history file.
func (r *csvHistoryRepository) Summary() (*domain.HistorySummary, error) {
	count, first, last, err := r.table.Stats()
	if err != nil {
		return nil, updating.NewDataFormatError(r.table.Path(), "unreadable rows", err)
	}

	summary := &domain.HistorySummary{
		Name: r.name,
		Path: r.table.Path(),
		Rows: count,
	}

	if count == 0 {
		return summary, nil
	}

	firstDate, err := r.parseRowDate(first)
	if err != nil {
		return nil, err
	}
	lastDate, err := r.parseRowDate(last)
	if err != nil {
		return nil, err
	}

	summary.FirstDate = firstDate.Format(time.DateOnly)
	summary.LastDate = lastDate.Format(time.DateOnly)

	return summary, nil
}

func (r *csvHistoryRepository) parseRowDate(row []string) (time.Time, error) {
	if len(row) == 0 || row[0] == "" {
		return time.Time{}, updating.NewDataFormatError(r.table.Path(), "row without a date column", nil)
	}

	date, err := time.Parse(r.dateLayout, row[0])
	if err != nil {
		return time.Time{}, updating.NewDataFormatError(
			r.table.Path(),
			fmt.Sprintf("cannot parse date %q", row[0]),
			err,
		)
	}

	return date, nil
}

// datedPath appends _YYYYMMDD to the file name, keeping the extension.
func datedPath(path string, now time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, now.Format("20060102"), ext))
}
