package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating"
)

func salesRow(date string) string {
	row := date
	for i := 1; i < len(domain.SalesHistoryHeader); i++ {
		row += ",0.00"
	}
	return row + "\n"
}

func salesHeader() string {
	header := ""
	for i, name := range domain.SalesHistoryHeader {
		if i > 0 {
			header += ","
		}
		header += name
	}
	return header + "\n"
}

func TestSalesHistoryRepository_LastUpdateDate(t *testing.T) {
	t.Run("missing file returns ErrNoHistory", func(t *testing.T) {
		repo := NewSalesHistoryRepository(filepath.Join(t.TempDir(), "sales.csv"))

		_, err := repo.LastUpdateDate()
		assert.ErrorIs(t, err, updating.ErrNoHistory)
	})

	t.Run("header-only file returns ErrNoHistory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sales.csv")
		require.NoError(t, os.WriteFile(path, []byte(salesHeader()), 0o644))

		repo := NewSalesHistoryRepository(path)

		_, err := repo.LastUpdateDate()
		assert.ErrorIs(t, err, updating.ErrNoHistory)
	})

	t.Run("returns the date of the last row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sales.csv")
		content := salesHeader() + salesRow("01/09/2023") + salesRow("01/10/2023")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		repo := NewSalesHistoryRepository(path)

		date, err := repo.LastUpdateDate()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("unparseable date returns DataFormatError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sales.csv")
		content := salesHeader() + salesRow("not-a-date")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		repo := NewSalesHistoryRepository(path)

		_, err := repo.LastUpdateDate()

		var formatErr *updating.DataFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, path, formatErr.Path)
	})

	t.Run("row with wrong column count returns DataFormatError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sales.csv")
		content := salesHeader() + "01/09/2023,100.00\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		repo := NewSalesHistoryRepository(path)

		_, err := repo.LastUpdateDate()

		var formatErr *updating.DataFormatError
		assert.ErrorAs(t, err, &formatErr)
	})
}

func TestSalesHistoryRepository_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	repo := NewSalesHistoryRepository(path)

	records := []domain.Record{
		&domain.DailySales{Day: time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC), Total: 100},
		&domain.DailySales{Day: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), Total: 250.5},
	}
	require.NoError(t, repo.Append(records))

	date, err := repo.LastUpdateDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), date)

	// A second append continues after the existing rows.
	more := []domain.Record{
		&domain.DailySales{Day: time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC), Total: 80.25},
	}
	require.NoError(t, repo.Append(more))

	summary, err := repo.Summary()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, "2023-01-09", summary.FirstDate)
	assert.Equal(t, "2023-01-11", summary.LastDate)
}

func TestSalesHistoryRepository_WriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo := NewSalesHistoryRepository(filepath.Join(dir, "sales.csv"))

	records := []domain.Record{
		&domain.DailySales{Day: time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC), Total: 100},
	}

	path, err := repo.WriteSnapshot(records)
	require.NoError(t, err)

	expected := filepath.Join(dir, "sales_"+time.Now().Format("20060102")+".csv")
	assert.Equal(t, expected, path)

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// The incremental history file is not touched by a snapshot.
	_, err = os.Stat(filepath.Join(dir, "sales.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestWeatherHistoryRepository_Summary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.csv")
	content := "datetime,temp,tempmin,tempmax,precip,windspeed,humidity,conditions\n" +
		"2023-01-09,10.2,5.1,14.3,0.0,12.4,81.2,Clear\n" +
		"2023-01-10,9.8,4.0,13.1,2.5,20.1,90.7,Rain\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewWeatherHistoryRepository(path)

	summary, err := repo.Summary()
	require.NoError(t, err)
	assert.Equal(t, WeatherHistoryName, summary.Name)
	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, "2023-01-09", summary.FirstDate)
	assert.Equal(t, "2023-01-10", summary.LastDate)
}
