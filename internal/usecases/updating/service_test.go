package updating_test

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating/mocks"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func sales(date time.Time) domain.Record {
	return &domain.DailySales{Day: date, Total: 100}
}

func TestService_UpdateHistory(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		setup        func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository)
		wantAppended int
		wantSkipped  int
		wantErr      func(t *testing.T, err error)
	}{
		{
			name: "appends only records newer than the last recorded date",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)

				source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).Return([]domain.Record{
					sales(day(2023, 1, 10)),
					sales(day(2023, 1, 11)),
				}, nil)

				repo.EXPECT().Append(gomock.Len(2)).Return(nil)
			},
			wantAppended: 2,
		},
		{
			name: "empty history fetches the full sequence",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(time.Time{}, updating.ErrNoHistory)

				source.EXPECT().FetchSince(gomock.Any(), time.Time{}).Return([]domain.Record{
					sales(day(2022, 11, 1)),
					sales(day(2022, 11, 2)),
				}, nil)

				repo.EXPECT().Append(gomock.Len(2)).Return(nil)
			},
			wantAppended: 2,
		},
		{
			name: "no newer records leaves the history untouched",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 11), nil)
				source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 11)).Return(nil, nil)
			},
			wantAppended: 0,
		},
		{
			name: "records not newer than the last date are skipped",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 10), nil)

				// The provider replays an already recorded day.
				source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 10)).Return([]domain.Record{
					sales(day(2023, 1, 10)),
					sales(day(2023, 1, 11)),
				}, nil)

				repo.EXPECT().Append(gomock.Len(1)).Return(nil)
			},
			wantAppended: 1,
			wantSkipped:  1,
		},
		{
			name: "records without a date are skipped with a warning",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)

				source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).Return([]domain.Record{
					sales(day(2023, 1, 10)),
					&domain.DailySales{}, // zero date marks a malformed record
					sales(day(2023, 1, 11)),
				}, nil)

				repo.EXPECT().Append(gomock.Len(2)).Return(nil)
			},
			wantAppended: 2,
			wantSkipped:  1,
		},
		{
			name: "duplicated dates within the batch are skipped",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)

				source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).Return([]domain.Record{
					sales(day(2023, 1, 10)),
					sales(day(2023, 1, 10)),
				}, nil)

				repo.EXPECT().Append(gomock.Len(1)).Return(nil)
			},
			wantAppended: 1,
			wantSkipped:  1,
		},
		{
			name: "provider failure aborts without writing",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)

				source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: func(t *testing.T, err error) {
				var providerErr *updating.ProviderError
				require.ErrorAs(t, err, &providerErr)
				assert.Equal(t, "square", providerErr.Provider)
			},
		},
		{
			name: "malformed history file aborts before fetching",
			setup: func(source *mocks.MockRecordSource, repo *mocks.MockHistoryRepository) {
				repo.EXPECT().LastUpdateDate().
					Return(time.Time{}, updating.NewDataFormatError("sales.csv", "cannot parse date", nil))
			},
			wantErr: func(t *testing.T, err error) {
				var formatErr *updating.DataFormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, "sales.csv", formatErr.Path)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mocks.NewMockRecordSource(ctrl)
			source.EXPECT().Name().Return("square").AnyTimes()
			repo := mocks.NewMockHistoryRepository(ctrl)

			tt.setup(source, repo)

			service := updating.NewService(source, repo)

			result, err := service.UpdateHistory(ctx)
			if tt.wantErr != nil {
				tt.wantErr(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAppended, result.Appended)
			assert.Equal(t, tt.wantSkipped, result.Skipped)
		})
	}
}

// Running the update twice against a provider that keeps replaying the same
// records must not append anything on the second run.
func TestService_UpdateHistory_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("square").AnyTimes()
	repo := mocks.NewMockHistoryRepository(ctrl)

	records := []domain.Record{
		sales(day(2023, 1, 10)),
		sales(day(2023, 1, 11)),
	}

	// First run: empty history, both records are appended.
	repo.EXPECT().LastUpdateDate().Return(time.Time{}, updating.ErrNoHistory)
	source.EXPECT().FetchSince(gomock.Any(), time.Time{}).Return(records, nil)
	repo.EXPECT().Append(gomock.Len(2)).Return(nil)

	service := updating.NewService(source, repo)

	result, err := service.UpdateHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Appended)

	// Second run: the history now ends at 01/11 and the provider replays
	// the same records; nothing newer, nothing appended.
	repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 11), nil)
	source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 11)).Return(records, nil)

	result, err = service.UpdateHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Appended)
	assert.Equal(t, 2, result.Skipped)
}

func TestService_UpdateHistory_ExportFailureDoesNotFailTheRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("square").AnyTimes()
	repo := mocks.NewMockHistoryRepository(ctrl)
	exporter := mocks.NewMockExporter(ctrl)

	repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)
	source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).Return([]domain.Record{
		sales(day(2023, 1, 10)),
	}, nil)
	repo.EXPECT().Append(gomock.Len(1)).Return(nil)
	exporter.EXPECT().Export(gomock.Len(1)).Return(errors.New("influx down"))

	service := updating.NewService(source, repo).WithExporter(exporter)

	result, err := service.UpdateHistory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Appended)
}

func TestService_RefreshHistory(t *testing.T) {
	t.Run("writes the full sequence into a dated file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := mocks.NewMockRecordSource(ctrl)
		source.EXPECT().Name().Return("square").AnyTimes()
		repo := mocks.NewMockHistoryRepository(ctrl)
		snapshots := mocks.NewMockSnapshotWriter(ctrl)

		source.EXPECT().FetchSince(gomock.Any(), time.Time{}).Return([]domain.Record{
			sales(day(2022, 11, 1)),
			sales(day(2022, 11, 2)),
		}, nil)
		snapshots.EXPECT().WriteSnapshot(gomock.Len(2)).Return("data/sales_20230111.csv", nil)

		service := updating.NewService(source, repo).WithSnapshots(snapshots)

		path, result, err := service.RefreshHistory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "data/sales_20230111.csv", path)
		assert.Equal(t, 2, result.Appended)
	})

	t.Run("fails when snapshots are not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := mocks.NewMockRecordSource(ctrl)
		source.EXPECT().Name().Return("square").AnyTimes()
		repo := mocks.NewMockHistoryRepository(ctrl)

		service := updating.NewService(source, repo)

		_, _, err := service.RefreshHistory(context.Background())
		assert.ErrorIs(t, err, updating.ErrSnapshotsDisabled)
	})
}

func TestResult_EmptyWindowLeftOutOfJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("square").AnyTimes()
	repo := mocks.NewMockHistoryRepository(ctrl)

	repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)
	source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).Return(nil, nil)

	service := updating.NewService(source, repo)

	result, err := service.UpdateHistory(context.Background())
	require.NoError(t, err)
	require.Nil(t, result.From)
	require.Nil(t, result.To)

	payload, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"from"`)
	assert.NotContains(t, string(payload), `"to"`)
}

func TestResult_WindowCoversAppendedRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("square").AnyTimes()
	repo := mocks.NewMockHistoryRepository(ctrl)

	repo.EXPECT().LastUpdateDate().Return(day(2023, 1, 9), nil)
	source.EXPECT().FetchSince(gomock.Any(), day(2023, 1, 9)).Return([]domain.Record{
		sales(day(2023, 1, 10)),
		sales(day(2023, 1, 12)),
	}, nil)
	repo.EXPECT().Append(gomock.Len(2)).Return(nil)

	service := updating.NewService(source, repo)

	result, err := service.UpdateHistory(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.From)
	require.NotNil(t, result.To)
	assert.Equal(t, day(2023, 1, 10), *result.From)
	assert.Equal(t, day(2023, 1, 12), *result.To)

	payload, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"from"`)
	assert.Contains(t, string(payload), `"to"`)
}
