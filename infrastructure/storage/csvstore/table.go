package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is an append-only CSV file with a fixed header. It is the only
// persistence the service has: the file on disk is the source of truth and
// existing rows are never modified, the file only grows by appended rows.
type Table struct {
	path   string
	header []string
}

func NewTable(path string, header []string) *Table {
	return &Table{
		path:   path,
		header: header,
	}
}

func (t *Table) Path() string {
	return t.path
}

// LastRow returns the last data row of the file. The second return value is
// false when the file is missing, empty or holds only the header.
func (t *Table) LastRow() ([]string, bool, error) {
	rows, err := t.readRows()
	if err != nil {
		return nil, false, err
	}

	if len(rows) == 0 {
		return nil, false, nil
	}

	return rows[len(rows)-1], true, nil
}

// Stats returns the number of data rows plus the first and last row. Used by
// the history summary endpoint.
func (t *Table) Stats() (count int, first, last []string, err error) {
	rows, err := t.readRows()
	if err != nil {
		return 0, nil, nil, err
	}

	if len(rows) == 0 {
		return 0, nil, nil, nil
	}

	return len(rows), rows[0], rows[len(rows)-1], nil
}

// Append writes the given rows to the end of the file in a single flush. The
// file and its header are created on first use.
func (t *Table) Append(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	writeHeader, err := t.needsHeader()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory of %s: %w", t.path, err)
		}
	}

	file, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening %s for append: %w", t.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if writeHeader {
		if err := writer.Write(t.header); err != nil {
			return fmt.Errorf("error writing header to %s: %w", t.path, err)
		}
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing row to %s: %w", t.path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing %s: %w", t.path, err)
	}

	return file.Sync()
}

// WriteAll creates (or truncates) a CSV file with a header and the given
// rows. Used by full history refreshes and by the report merge, which write
// into fresh dated files instead of appending.
func WriteAll(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory of %s: %w", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing header to %s: %w", path, err)
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing row to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing %s: %w", path, err)
	}

	return file.Sync()
}

// ReadAll returns the header and the data rows of an arbitrary CSV file.
// Rows may have uneven lengths; no shape validation happens here.
func ReadAll(path string) (header []string, rows [][]string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if len(all) == 0 {
		return nil, nil, nil
	}

	return all[0], all[1:], nil
}

// readRows returns the data rows of the table, without the header. A missing
// file is treated as an empty table.
func (t *Table) readRows() ([][]string, error) {
	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error opening %s: %w", t.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(t.header)

	rows := make([][]string, 0)
	first := true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", t.path, err)
		}

		if first {
			first = false
			continue // header
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// needsHeader reports whether the next append must start with the header row.
func (t *Table) needsHeader() (bool, error) {
	info, err := os.Stat(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("error inspecting %s: %w", t.path, err)
	}

	return info.Size() == 0, nil
}
