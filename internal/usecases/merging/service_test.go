package merging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddepe/sales-sync-api/infrastructure/storage/csvstore"
)

// writeReport writes a report summary export the way Square produces them:
// measures as rows, days as columns.
func writeReport(t *testing.T, dir, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestService_Transpose(t *testing.T) {
	dir := t.TempDir()
	input := writeReport(t, dir, "report_2023.csv",
		"Sales,01/09/2023,01/10/2023\n"+
			"Gross Sales,$100.00,$250.50\n"+
			"Total,$110.00,$260.50\n")

	service := NewService(dir)

	output, err := service.Transpose(input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_2023_t.csv"), output)

	header, rows, err := csvstore.ReadAll(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Gross Sales", "Total"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"01/09/2023", "$100.00", "$110.00"}, rows[0])
	assert.Equal(t, []string{"01/10/2023", "$250.50", "$260.50"}, rows[1])
}

func TestService_Transpose_RaggedRowsArePadded(t *testing.T) {
	dir := t.TempDir()
	input := writeReport(t, dir, "report.csv",
		"Sales,01/09/2023,01/10/2023\n"+
			"Gross Sales,$100.00\n")

	service := NewService(dir)

	output, err := service.Transpose(input)
	require.NoError(t, err)

	_, rows, err := csvstore.ReadAll(output)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"01/10/2023", ""}, rows[1])
}

func TestService_Combine(t *testing.T) {
	dir := t.TempDir()

	// Already transposed: days as rows, measures as columns. Unnamed and
	// Payments columns come from the raw exports and must be dropped.
	first := writeReport(t, dir, "report_2022_t.csv",
		"Sales,Gross Sales,Unnamed: 2,Payments,Total\n"+
			"12/31/2022,\"$1,234.50\",x,947,$1300.00\n")
	second := writeReport(t, dir, "report_2023_t.csv",
		"Sales,Gross Sales,Unnamed: 2,Payments,Total\n"+
			"01/09/2023,$100.00,y,12,$110.00\n"+
			"01/10/2023,,z,3,$0.00\n")

	service := NewService(dir)
	output := filepath.Join(dir, "combined.csv")

	require.NoError(t, service.Combine([]string{first, second}, output))

	header, rows, err := csvstore.ReadAll(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Gross Sales", "Total"}, header)
	require.Len(t, rows, 3)

	// Currency formatting is scrubbed from every measure cell.
	assert.Equal(t, []string{"12/31/2022", "1234.5", "1300"}, rows[0])
	assert.Equal(t, []string{"01/09/2023", "100", "110"}, rows[1])

	// Empty measures become zero so every row keeps its shape.
	assert.Equal(t, []string{"01/10/2023", "0", "0"}, rows[2])
}

func TestService_MergeAll(t *testing.T) {
	dir := t.TempDir()
	input := writeReport(t, dir, "report_2023.csv",
		"Sales,01/09/2023,01/10/2023\n"+
			"Gross Sales,$100.00,$250.50\n")

	service := NewService(dir)

	output, err := service.MergeAll([]string{input})
	require.NoError(t, err)

	expected := filepath.Join(dir, "combined_sales_"+time.Now().Format("20060102")+".csv")
	assert.Equal(t, expected, output)

	header, rows, err := csvstore.ReadAll(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Gross Sales"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"01/09/2023", "100"}, rows[0])
	assert.Equal(t, []string{"01/10/2023", "250.5"}, rows[1])
}

func TestService_MergeAll_NoFiles(t *testing.T) {
	service := NewService(t.TempDir())

	_, err := service.MergeAll(nil)
	assert.Error(t, err)
}

func TestScrubNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,234.50", "1234.5"},
		{"$0.00", "0"},
		{"-$12.30", "-12.3"},
		{"250.5", "250.5"},
		{"", "0"},
		{"N/A", "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scrubNumber(tt.in), "input %q", tt.in)
	}
}
