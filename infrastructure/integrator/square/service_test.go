package square

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	squaredomain "github.com/ddepe/sales-sync-api/infrastructure/integrator/square/domain"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/square/mocks"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/square/squareclient"
	"github.com/ddepe/sales-sync-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		History: config.History{
			SeedDate: "2022-11-01",
			Timezone: "America/Los_Angeles",
		},
	}
}

func money(cents int64) *squaredomain.Money {
	return &squaredomain.Money{Amount: cents, Currency: "USD"}
}

func TestService_DailySales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service, err := New(testConfig(), client)
	require.NoError(t, err)

	day := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)

	client.EXPECT().
		ListPayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params squareclient.ListPaymentsParams) (*squareclient.ListPaymentsResponse, error) {
			// The window covers one store day, local midnight to a
			// millisecond before the next one.
			assert.Equal(t, "2023-01-10T00:00:00-08:00", params.BeginTime.Format(time.RFC3339))
			assert.Equal(t, 24*time.Hour-time.Millisecond, params.EndTime.Sub(params.BeginTime))

			return &squareclient.ListPaymentsResponse{
				Payments: []squaredomain.Payment{
					{
						Status:      squaredomain.StatusCompleted,
						AmountMoney: money(1000),
						TipMoney:    money(150),
						TotalMoney:  money(1150),
						ProcessingFee: []squaredomain.ProcessingFee{
							{AmountMoney: money(33)},
						},
					},
					{
						Status:        squaredomain.StatusApproved,
						AmountMoney:   money(500),
						TotalMoney:    money(500),
						RefundedMoney: money(200),
					},
					{
						// Cancelled payments are left out of the sums.
						Status:      "CANCELED",
						AmountMoney: money(99999),
						TotalMoney:  money(99999),
					},
				},
			}, nil
		})

	sales, err := service.DailySales(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, 15.0, sales.GrossSales)
	assert.Equal(t, 1.5, sales.Tip)
	assert.Equal(t, 2.0, sales.RefundsByAmount)
	assert.Equal(t, 16.5, sales.Total)
	assert.Equal(t, 0.33, sales.Fees)
	assert.Equal(t, 16.17, sales.NetTotal)
	assert.Equal(t, 13.0, sales.NetSales)
	assert.Equal(t, sales.Total, sales.TotalCollected)
	assert.Equal(t, sales.Total, sales.Card)
}

func TestService_DailySales_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service, err := New(testConfig(), client)
	require.NoError(t, err)

	payment := squaredomain.Payment{
		Status:      squaredomain.StatusCompleted,
		AmountMoney: money(1000),
		TotalMoney:  money(1000),
	}

	gomock.InOrder(
		client.EXPECT().
			ListPayments(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params squareclient.ListPaymentsParams) (*squareclient.ListPaymentsResponse, error) {
				assert.Empty(t, params.Cursor)
				return &squareclient.ListPaymentsResponse{
					Payments: []squaredomain.Payment{payment},
					Cursor:   "page-2",
				}, nil
			}),
		client.EXPECT().
			ListPayments(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params squareclient.ListPaymentsParams) (*squareclient.ListPaymentsResponse, error) {
				assert.Equal(t, "page-2", params.Cursor)
				return &squareclient.ListPaymentsResponse{
					Payments: []squaredomain.Payment{payment},
				}, nil
			}),
	)

	sales, err := service.DailySales(context.Background(), time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Both pages count towards the day.
	assert.Equal(t, 20.0, sales.Total)
}

func TestService_FetchSince(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service, err := New(testConfig(), client)
	require.NoError(t, err)

	location, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	now := time.Now().In(location)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location).AddDate(0, 0, -1)
	since := yesterday.AddDate(0, 0, -3)

	client.EXPECT().
		ListPayments(gomock.Any(), gomock.Any()).
		Return(&squareclient.ListPaymentsResponse{}, nil).
		Times(3)

	records, err := service.FetchSince(context.Background(), since)
	require.NoError(t, err)

	// One record per day, from the day after since through yesterday.
	require.Len(t, records, 3)
	assert.Equal(t, since.AddDate(0, 0, 1).Format(time.DateOnly), records[0].Date().Format(time.DateOnly))
	assert.Equal(t, yesterday.Format(time.DateOnly), records[2].Date().Format(time.DateOnly))

	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Date().After(records[i-1].Date()))
	}
}

func TestService_FetchSince_NothingNewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service, err := New(testConfig(), client)
	require.NoError(t, err)

	location, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	now := time.Now().In(location)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location).AddDate(0, 0, -1)

	// The history already ends at yesterday, there is no finished day left.
	records, err := service.FetchSince(context.Background(), yesterday)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNew_InvalidConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)

	t.Run("unknown timezone", func(t *testing.T) {
		cfg := testConfig()
		cfg.History.Timezone = "Mars/Olympus_Mons"

		_, err := New(cfg, client)
		assert.Error(t, err)
	})

	t.Run("bad seed date", func(t *testing.T) {
		cfg := testConfig()
		cfg.History.SeedDate = "11/01/2022"

		_, err := New(cfg, client)
		assert.Error(t, err)
	})
}
