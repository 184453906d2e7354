package domain

import "time"

// WeatherDateLayout is the date format used by the Visual Crossing timeline
// API and therefore by the weather history file.
const WeatherDateLayout = "2006-01-02"

// WeatherHistoryHeader mirrors the daily columns of the Visual Crossing
// timeline CSV. Only the columns used downstream as forecast regressors are
// kept.
var WeatherHistoryHeader = []string{
	"datetime",
	"temp",
	"tempmin",
	"tempmax",
	"precip",
	"windspeed",
	"humidity",
	"conditions",
}

// DailyWeather is one day of observed weather. Values stays in header order
// (without the leading date column) exactly as returned by the provider, so
// unexpected formatting is passed through rather than re-encoded.
type DailyWeather struct {
	Day    time.Time
	Values []string
}

func (w *DailyWeather) Date() time.Time {
	return w.Day
}

func (w *DailyWeather) Row() []string {
	row := make([]string, 0, len(w.Values)+1)
	row = append(row, w.Day.Format(WeatherDateLayout))
	return append(row, w.Values...)
}
