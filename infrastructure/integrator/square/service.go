package square

import (
	"context"
	"fmt"
	"time"

	squaredomain "github.com/ddepe/sales-sync-api/infrastructure/integrator/square/domain"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/square/squareclient"
	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/pkg/utils"
)

const ProviderName = "square"

// Integrator aggregates Square payments into daily sales records.
type Integrator interface {
	Name() string
	DailySales(ctx context.Context, day time.Time) (*domain.DailySales, error)
	FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error)
}

type Service struct {
	cfg      *config.Config
	Client   squareclient.Client
	location *time.Location
	seed     time.Time
	delay    time.Duration
}

func New(cfg *config.Config, client squareclient.Client) (Integrator, error) {
	location, err := time.LoadLocation(cfg.History.Timezone)
	if err != nil {
		return nil, fmt.Errorf("error loading store timezone %q: %w", cfg.History.Timezone, err)
	}

	seed, err := time.Parse(time.DateOnly, cfg.History.SeedDate)
	if err != nil {
		return nil, fmt.Errorf("error parsing seed date %q: %w", cfg.History.SeedDate, err)
	}

	return &Service{
		cfg:      cfg,
		Client:   client,
		location: location,
		seed:     seed,
		delay:    time.Duration(cfg.SalesSync.RequestDelaySeconds) * time.Second,
	}, nil
}

func (s *Service) Name() string {
	return ProviderName
}

// DailySales sums every completed or approved payment of one store day. The
// day window runs from local midnight to one millisecond before the next
// midnight, in the store timezone.
func (s *Service) DailySales(ctx context.Context, day time.Time) (*domain.DailySales, error) {
	begin := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location)
	end := begin.AddDate(0, 0, 1).Add(-time.Millisecond)

	sales := &domain.DailySales{Day: begin}

	cursor := ""
	for {
		resp, err := s.Client.ListPayments(ctx, squareclient.ListPaymentsParams{
			BeginTime: begin,
			EndTime:   end,
			Cursor:    cursor,
		})
		if err != nil {
			return nil, err
		}

		sumPayments(sales, resp.Payments)

		if resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
	}

	centsToUSD(sales)

	return sales, nil
}

// FetchSince returns one aggregated record per day, oldest first, from the
// day after since through yesterday. Today is left out so recorded days are
// final. A zero since starts at the configured seed date.
func (s *Service) FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error) {
	start := s.seed
	if !since.IsZero() {
		start = since.AddDate(0, 0, 1)
	}

	now := time.Now().In(s.location)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, -1)

	records := make([]domain.Record, 0)
	for day := start; !day.After(yesterday); day = day.AddDate(0, 0, 1) {
		sales, err := s.DailySales(ctx, day)
		if err != nil {
			return nil, err
		}

		records = append(records, sales)

		// Pause between days so the API is not hammered.
		if s.delay > 0 && day.Before(yesterday) {
			time.Sleep(s.delay)
		}
	}

	return records, nil
}

func sumPayments(sales *domain.DailySales, payments []squaredomain.Payment) {
	for i := range payments {
		payment := &payments[i]
		if !payment.Counts() {
			continue
		}

		sales.GrossSales += amount(payment.AmountMoney)
		sales.Tip += amount(payment.TipMoney)
		sales.RefundsByAmount += amount(payment.RefundedMoney)
		sales.Total += amount(payment.TotalMoney)
		if len(payment.ProcessingFee) > 0 {
			sales.Fees += amount(payment.ProcessingFee[0].AmountMoney)
		}
	}

	sales.NetTotal = sales.Total - sales.Fees
	sales.NetSales = sales.GrossSales - sales.RefundsByAmount
	sales.TotalCollected = sales.Total
	sales.Card = sales.Total
}

func amount(m *squaredomain.Money) float64 {
	if m == nil {
		return 0
	}
	return float64(m.Amount)
}

// centsToUSD converts every measure from integer cents to dollars, after all
// sums are done.
func centsToUSD(s *domain.DailySales) {
	s.GrossSales = utils.RoundWithTwoDecimalPlace(s.GrossSales / 100)
	s.Returns = utils.RoundWithTwoDecimalPlace(s.Returns / 100)
	s.DiscountsComps = utils.RoundWithTwoDecimalPlace(s.DiscountsComps / 100)
	s.NetSales = utils.RoundWithTwoDecimalPlace(s.NetSales / 100)
	s.GiftCardSales = utils.RoundWithTwoDecimalPlace(s.GiftCardSales / 100)
	s.Tax = utils.RoundWithTwoDecimalPlace(s.Tax / 100)
	s.Tip = utils.RoundWithTwoDecimalPlace(s.Tip / 100)
	s.RefundsByAmount = utils.RoundWithTwoDecimalPlace(s.RefundsByAmount / 100)
	s.Total = utils.RoundWithTwoDecimalPlace(s.Total / 100)
	s.TotalCollected = utils.RoundWithTwoDecimalPlace(s.TotalCollected / 100)
	s.Cash = utils.RoundWithTwoDecimalPlace(s.Cash / 100)
	s.Card = utils.RoundWithTwoDecimalPlace(s.Card / 100)
	s.Other = utils.RoundWithTwoDecimalPlace(s.Other / 100)
	s.GiftCard = utils.RoundWithTwoDecimalPlace(s.GiftCard / 100)
	s.Fees = utils.RoundWithTwoDecimalPlace(s.Fees / 100)
	s.NetTotal = utils.RoundWithTwoDecimalPlace(s.NetTotal / 100)
}
