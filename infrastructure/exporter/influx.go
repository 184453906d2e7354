package exporter

import (
	"strconv"

	influxdb "github.com/influxdata/influxdb/client/v2"
	"github.com/pkg/errors"

	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/domain"
)

// InfluxExporter mirrors appended history rows into InfluxDB so dashboards
// can query them. The CSV file stays the source of truth; this sink is
// rebuilt from the file whenever needed.
type InfluxExporter struct {
	client      influxdb.Client
	database    string
	measurement string
	header      []string
}

func NewInfluxExporter(cfg config.Influx, measurement string, header []string) (*InfluxExporter, error) {
	client, err := influxdb.NewHTTPClient(influxdb.HTTPConfig{
		Addr:     cfg.Endpoint,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating influx client")
	}

	return &InfluxExporter{
		client:      client,
		database:    cfg.Database,
		measurement: measurement,
		header:      header,
	}, nil
}

// Export writes one point per record, timestamped at the record date. Column
// values that parse as numbers become numeric fields, the rest stay strings.
func (e *InfluxExporter) Export(records []domain.Record) error {
	bp, err := influxdb.NewBatchPoints(influxdb.BatchPointsConfig{
		Database:  e.database,
		Precision: "s",
	})
	if err != nil {
		return errors.Wrap(err, "error creating batch points")
	}

	for _, record := range records {
		row := record.Row()
		fields := make(map[string]interface{}, len(row))

		// Skip the leading date column; it is the point timestamp.
		for i := 1; i < len(row) && i < len(e.header); i++ {
			if value, err := strconv.ParseFloat(row[i], 64); err == nil {
				fields[e.header[i]] = value
			} else if row[i] != "" {
				fields[e.header[i]] = row[i]
			}
		}

		if len(fields) == 0 {
			continue
		}

		point, err := influxdb.NewPoint(e.measurement, nil, fields, record.Date())
		if err != nil {
			return errors.Wrap(err, "error creating point")
		}
		bp.AddPoint(point)
	}

	if err := e.client.Write(bp); err != nil {
		return errors.Wrap(err, "error writing to influx")
	}

	return nil
}

func (e *InfluxExporter) Close() error {
	return e.client.Close()
}
