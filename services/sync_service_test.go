package services

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeSampleSource подставной поставщик данных устройства
type fakeSampleSource struct {
	fetchSamples func(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error)
	fetchApps    func(ctx context.Context) ([]models.InstalledApp, bool, error)
}

func (f *fakeSampleSource) FetchUsageSamples(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error) {
	return f.fetchSamples(ctx, startMs, endMs)
}

func (f *fakeSampleSource) FetchInstalledApps(ctx context.Context) ([]models.InstalledApp, bool, error) {
	if f.fetchApps == nil {
		return nil, false, nil
	}
	return f.fetchApps(ctx)
}

func newTestSyncService(source UsageSampleSource, usageRepo *mocks.UsageRepository, appRepo *mocks.InstalledAppRepository) *SyncService {
	aggregator := NewUsageAggregatorService(usageRepo, appRepo)
	service := NewSyncService(aggregator, source)
	service.Now = func() time.Time {
		return time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestSyncRangeSingleDay(t *testing.T) {
	mockUsageRepo := new(mocks.UsageRepository)
	mockAppRepo := new(mocks.InstalledAppRepository)

	source := &fakeSampleSource{
		fetchSamples: func(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error) {
			return []models.UsageSample{
				{PackageName: "com.example.game", TotalTimeMs: 60000},
			}, AccessGranted, nil
		},
	}
	service := newTestSyncService(source, mockUsageRepo, mockAppRepo)

	mockUsageRepo.On("UpsertDailyUsage", mock.Anything).Return(nil)
	mockAppRepo.On("ReplaceCatalog", "child1", mock.Anything).Return(nil)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	report, err := service.SyncRange(context.Background(), "child1", "device1", day, day)

	assert.NoError(t, err)
	assert.False(t, report.Cancelled)
	assert.Len(t, report.Days, 1)
	assert.Equal(t, "2025-06-02", report.Days[0].UsageDate)
	assert.Equal(t, AccessGranted, report.Days[0].Status)
	assert.Equal(t, 1, report.Days[0].RowsWritten)
	mockUsageRepo.AssertExpectations(t)
}

func TestSyncRangeNeedsPermission(t *testing.T) {
	mockUsageRepo := new(mocks.UsageRepository)
	mockAppRepo := new(mocks.InstalledAppRepository)

	// Нет доступа к данным использования: это не ошибка, день
	// пропускается со статусом в отчете
	source := &fakeSampleSource{
		fetchSamples: func(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error) {
			return nil, AccessNeedsPermission, nil
		},
	}
	service := newTestSyncService(source, mockUsageRepo, mockAppRepo)

	mockAppRepo.On("ReplaceCatalog", "child1", mock.Anything).Return(nil)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	report, err := service.SyncRange(context.Background(), "child1", "device1", day, day)

	assert.NoError(t, err)
	assert.Len(t, report.Days, 1)
	assert.Equal(t, AccessNeedsPermission, report.Days[0].Status)
	assert.Empty(t, report.Days[0].Error)
	mockUsageRepo.AssertNotCalled(t, "UpsertDailyUsage", mock.Anything)
}

func TestSyncRangeCancelledBetweenDays(t *testing.T) {
	mockUsageRepo := new(mocks.UsageRepository)
	mockAppRepo := new(mocks.InstalledAppRepository)

	ctx, cancel := context.WithCancel(context.Background())

	// Отмена происходит во время первого дня: он дописывается до
	// конца, второй день уже не начинается
	source := &fakeSampleSource{
		fetchSamples: func(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error) {
			cancel()
			return []models.UsageSample{
				{PackageName: "com.example.game", TotalTimeMs: 60000},
			}, AccessGranted, nil
		},
	}
	service := newTestSyncService(source, mockUsageRepo, mockAppRepo)

	mockUsageRepo.On("UpsertDailyUsage", mock.Anything).Return(nil).Once()

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	report, err := service.SyncRange(ctx, "child1", "device1", from, to)

	assert.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Len(t, report.Days, 1)
	assert.Equal(t, 1, report.Days[0].RowsWritten)
	mockUsageRepo.AssertExpectations(t)
}

func TestSyncRangeDaysAreIndependent(t *testing.T) {
	mockUsageRepo := new(mocks.UsageRepository)
	mockAppRepo := new(mocks.InstalledAppRepository)

	// Первый день падает на стороне источника, второй проходит
	calls := 0
	source := &fakeSampleSource{
		fetchSamples: func(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error) {
			calls++
			if calls == 1 {
				return nil, AccessUnavailable, errors.New("device offline")
			}
			return []models.UsageSample{
				{PackageName: "com.example.game", TotalTimeMs: 60000},
			}, AccessGranted, nil
		},
	}
	service := newTestSyncService(source, mockUsageRepo, mockAppRepo)

	mockUsageRepo.On("UpsertDailyUsage", mock.Anything).Return(nil).Once()
	mockAppRepo.On("ReplaceCatalog", "child1", mock.Anything).Return(nil)

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	report, err := service.SyncRange(context.Background(), "child1", "device1", from, to)

	assert.NoError(t, err)
	assert.Len(t, report.Days, 2)
	assert.Equal(t, "device offline", report.Days[0].Error)
	assert.Equal(t, 0, report.Days[0].RowsWritten)
	assert.Equal(t, 1, report.Days[1].RowsWritten)
	mockUsageRepo.AssertExpectations(t)
}

func TestSyncRangeCatalogFailureDoesNotUndoDays(t *testing.T) {
	mockUsageRepo := new(mocks.UsageRepository)
	mockAppRepo := new(mocks.InstalledAppRepository)

	// Сбой каталога не отменяет записанные дни, он виден в отчете
	source := &fakeSampleSource{
		fetchSamples: func(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error) {
			return []models.UsageSample{
				{PackageName: "com.example.game", TotalTimeMs: 60000},
			}, AccessGranted, nil
		},
		fetchApps: func(ctx context.Context) ([]models.InstalledApp, bool, error) {
			return nil, false, errors.New("catalog unavailable")
		},
	}
	service := newTestSyncService(source, mockUsageRepo, mockAppRepo)

	mockUsageRepo.On("UpsertDailyUsage", mock.Anything).Return(nil)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	report, err := service.SyncRange(context.Background(), "child1", "device1", day, day)

	assert.NoError(t, err)
	assert.Equal(t, "catalog unavailable", report.CatalogError)
	assert.Len(t, report.Days, 1)
	assert.Equal(t, 1, report.Days[0].RowsWritten)
	mockAppRepo.AssertNotCalled(t, "ReplaceCatalog", mock.Anything, mock.Anything)
}
