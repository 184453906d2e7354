package merging

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/infrastructure/storage/csvstore"
)

// nonNumeric matches everything that is not part of a decimal number, so
// currency symbols and thousands separators can be stripped from report
// cells ("$1,234.50" -> "1234.50").
var nonNumeric = regexp.MustCompile(`[^-\d.]`)

// droppedColumns are report summary columns that never make it into the
// combined file.
var droppedColumns = map[string]bool{
	"Payments": true,
}

// Service merges yearly Square report summary exports into one clean CSV.
// The exports come with measures as rows and days as columns, so each file
// is transposed first.
type Service struct {
	outputDir string
}

func NewService(outputDir string) *Service {
	return &Service{
		outputDir: outputDir,
	}
}

// MergeAll transposes every input file and combines the results into
// combined_sales_YYYYMMDD.csv inside the output directory. It returns the
// path of the combined file.
func (s *Service) MergeAll(files []string) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("no report files to merge")
	}

	transposed := make([]string, 0, len(files))
	for _, file := range files {
		path, err := s.Transpose(file)
		if err != nil {
			return "", err
		}
		transposed = append(transposed, path)
	}

	output := filepath.Join(
		s.outputDir,
		fmt.Sprintf("combined_sales_%s.csv", time.Now().Format("20060102")),
	)

	if err := s.Combine(transposed, output); err != nil {
		return "", err
	}

	return output, nil
}

// Transpose rewrites a report export with rows and columns swapped, into a
// sibling file with a "_t" suffix.
func (s *Service) Transpose(inputFile string) (string, error) {
	header, rows, err := csvstore.ReadAll(inputFile)
	if err != nil {
		return "", err
	}

	data := append([][]string{header}, rows...)
	flipped := transpose(data)

	if len(flipped) == 0 {
		return "", fmt.Errorf("report %s is empty", inputFile)
	}

	output := addSuffixToFilename(inputFile, "t")
	if err := csvstore.WriteAll(output, flipped[0], flipped[1:]); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"input":  inputFile,
		"output": output,
	}).Info("Report transposed")

	return output, nil
}

// Combine concatenates transposed reports into a single file, dropping
// unnamed and unwanted columns and scrubbing currency formatting from every
// measure cell.
func (s *Service) Combine(files []string, outputFile string) error {
	var outHeader []string
	var keep []int
	outRows := make([][]string, 0)

	for _, file := range files {
		header, rows, err := csvstore.ReadAll(file)
		if err != nil {
			return err
		}

		if outHeader == nil {
			for i, name := range header {
				if name == "" || strings.HasPrefix(name, "Unnamed") || droppedColumns[name] {
					continue
				}
				keep = append(keep, i)
				outHeader = append(outHeader, name)
			}
		}

		for _, row := range rows {
			out := make([]string, 0, len(keep))
			for n, i := range keep {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}

				// The first kept column is the date; everything else
				// is a measure.
				if n > 0 {
					cell = scrubNumber(cell)
				}
				out = append(out, cell)
			}
			outRows = append(outRows, out)
		}
	}

	if err := csvstore.WriteAll(outputFile, outHeader, outRows); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"files":  len(files),
		"rows":   len(outRows),
		"output": outputFile,
	}).Info("Reports combined")

	return nil
}

// scrubNumber strips currency formatting and re-encodes the value as a plain
// decimal. Cells that still do not parse are zeroed rather than dropped, so
// every row keeps its shape.
func scrubNumber(cell string) string {
	cleaned := nonNumeric.ReplaceAllString(cell, "")
	if cleaned == "" {
		return "0"
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return "0"
	}

	return value.String()
}

func transpose(data [][]string) [][]string {
	width := 0
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}

	out := make([][]string, width)
	for i := range out {
		out[i] = make([]string, len(data))
		for j, row := range data {
			if i < len(row) {
				out[i][j] = row[i]
			}
		}
	}

	return out
}

func addSuffixToFilename(path, suffix string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, suffix, ext))
}
