package domain

import (
	"strconv"
	"time"
)

// SalesDateLayout is the date format used in the first column of the
// aggregated sales file. Kept as MM/DD/YYYY for compatibility with the
// report exports the file was seeded from.
const SalesDateLayout = "01/02/2006"

// SalesHistoryHeader is the header row of the aggregated sales file. The
// first column ("Sales") holds the date, the remaining columns hold the
// monetary measures in USD.
var SalesHistoryHeader = []string{
	"Sales",
	"Gross Sales",
	"Returns",
	"Discounts & Comps",
	"Net Sales",
	"Gift Card Sales",
	"Tax",
	"Tip",
	"Refunds by Amount",
	"Total",
	"Total Collected",
	"Cash",
	"Card",
	"Other",
	"Gift Card",
	"Fees",
	"Net Total",
}

// DailySales holds the aggregated payment measures for one calendar day.
type DailySales struct {
	Day             time.Time
	GrossSales      float64
	Returns         float64
	DiscountsComps  float64
	NetSales        float64
	GiftCardSales   float64
	Tax             float64
	Tip             float64
	RefundsByAmount float64
	Total           float64
	TotalCollected  float64
	Cash            float64
	Card            float64
	Other           float64
	GiftCard        float64
	Fees            float64
	NetTotal        float64
}

func (s *DailySales) Date() time.Time {
	return s.Day
}

func (s *DailySales) Row() []string {
	values := []float64{
		s.GrossSales,
		s.Returns,
		s.DiscountsComps,
		s.NetSales,
		s.GiftCardSales,
		s.Tax,
		s.Tip,
		s.RefundsByAmount,
		s.Total,
		s.TotalCollected,
		s.Cash,
		s.Card,
		s.Other,
		s.GiftCard,
		s.Fees,
		s.NetTotal,
	}

	row := make([]string, 0, len(values)+1)
	row = append(row, s.Day.Format(SalesDateLayout))
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
	}

	return row
}
