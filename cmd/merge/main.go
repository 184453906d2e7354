package main

import (
	"flag"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/usecases/merging"
)

// One-shot merge of yearly Square report summary exports into a single
// clean CSV. Input files come from the flag or from REPORT_MERGE_INPUT_FILES.
func main() {
	inputs := flag.String("inputs", "", "comma separated report summary CSV files")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	files := cfg.ReportMerge.InputFiles
	if *inputs != "" {
		files = strings.Split(*inputs, ",")
	}

	if len(files) == 0 {
		logrus.Fatal("No report files given, set -inputs or REPORT_MERGE_INPUT_FILES")
	}

	merger := merging.NewService(cfg.ReportMerge.OutputDir)

	output, err := merger.MergeAll(files)
	if err != nil {
		logrus.WithError(err).Fatal("Error merging the report files")
	}

	logrus.WithField("output", output).Info("Reports merged")
}
