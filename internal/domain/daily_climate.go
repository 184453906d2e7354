package domain

import (
	"strconv"
	"time"
)

// MeteostatHistoryHeader mirrors the daily columns of the Meteostat point
// data, station observations rather than the modelled Visual Crossing feed.
// The first column holds the date.
var MeteostatHistoryHeader = []string{
	"time",
	"tavg",
	"tmin",
	"tmax",
	"prcp",
	"snow",
	"wdir",
	"wspd",
	"wpgt",
	"pres",
	"tsun",
}

// DailyClimate is one day of station observations. Missing readings stay
// nil and are written as empty cells, the way the station data arrives.
type DailyClimate struct {
	Day  time.Time
	Tavg *float64
	Tmin *float64
	Tmax *float64
	Prcp *float64
	Snow *float64
	Wdir *float64
	Wspd *float64
	Wpgt *float64
	Pres *float64
	Tsun *float64
}

func (c *DailyClimate) Date() time.Time {
	return c.Day
}

func (c *DailyClimate) Row() []string {
	values := []*float64{
		c.Tavg,
		c.Tmin,
		c.Tmax,
		c.Prcp,
		c.Snow,
		c.Wdir,
		c.Wspd,
		c.Wpgt,
		c.Pres,
		c.Tsun,
	}

	row := make([]string, 0, len(values)+1)
	row = append(row, c.Day.Format(WeatherDateLayout))
	for _, v := range values {
		if v == nil {
			row = append(row, "")
			continue
		}
		row = append(row, strconv.FormatFloat(*v, 'f', -1, 64))
	}

	return row
}
