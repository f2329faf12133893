package services

import (
	"context"
	"log"
	"time"

	"PinguinPolicy/models"
)

// AccessStatus статус доступа к данным использования на устройстве.
// Это не ошибки: "нет разрешения" и "нет использования" — разные вещи,
// и вызывающая сторона обязана их различать.
type AccessStatus string

const (
	AccessGranted         AccessStatus = "granted"
	AccessNeedsPermission AccessStatus = "needs_permission"
	AccessUnavailable     AccessStatus = "unavailable"
)

// UsageSampleSource поставщик сырых данных с устройства ребенка
type UsageSampleSource interface {
	// FetchUsageSamples возвращает записи использования за окно в
	// миллисекундах эпохи вместе со статусом доступа
	FetchUsageSamples(ctx context.Context, startMs, endMs int64) ([]models.UsageSample, AccessStatus, error)
	// FetchInstalledApps возвращает каталог приложений; второй результат
	// сообщает, известен ли каталог целиком
	FetchInstalledApps(ctx context.Context) ([]models.InstalledApp, bool, error)
}

// DaySyncResult итог синхронизации одного календарного дня
type DaySyncResult struct {
	UsageDate       string       `json:"usage_date"`
	Status          AccessStatus `json:"status"`
	PackagesTouched int          `json:"packages_touched"`
	RowsWritten     int          `json:"rows_written"`
	Error           string       `json:"error,omitempty"`
}

// SyncReport структурный итог многодневной синхронизации. Критический
// путь (запись использования) и дополнительное обогащение (каталог
// приложений) разделены: сбой каталога не отменяет записанные дни.
type SyncReport struct {
	Days         []DaySyncResult `json:"days"`
	Cancelled    bool            `json:"cancelled"`
	CatalogError string          `json:"catalog_error,omitempty"`
}

// SyncService оркестрирует периодическую синхронизацию использования
type SyncService struct {
	Aggregator *UsageAggregatorService
	Source     UsageSampleSource
	Now        func() time.Time
}

func NewSyncService(aggregator *UsageAggregatorService, source UsageSampleSource) *SyncService {
	return &SyncService{Aggregator: aggregator, Source: source, Now: time.Now}
}

// SyncRange синхронизирует дни от from до to включительно. Дни
// независимы: сбой одного дня не трогает остальные, а отмена контекста
// между днями оставляет уже записанные дни валидными (повтор
// идемпотентен).
func (s *SyncService) SyncRange(ctx context.Context, childID, deviceID string, from, to time.Time) (SyncReport, error) {
	report := SyncReport{}
	now := s.Now()

	observed := make(map[string]int64)
	for day := startOfDay(from); !day.After(startOfDay(to)); day = day.AddDate(0, 0, 1) {
		// Отмена проверяется между днями, не внутри дня
		if ctx.Err() != nil {
			report.Cancelled = true
			return report, nil
		}

		windowStart := day
		windowEnd := day.AddDate(0, 0, 1)
		if windowEnd.After(now) {
			windowEnd = now
		}

		result := DaySyncResult{UsageDate: day.Format(models.UsageDateFormat)}

		samples, status, err := s.Source.FetchUsageSamples(ctx, windowStart.UnixMilli(), windowEnd.UnixMilli())
		result.Status = status
		if err != nil {
			result.Error = err.Error()
			report.Days = append(report.Days, result)
			continue
		}
		if status != AccessGranted {
			// Нет доступа к данным — день пропускается, статус виден в отчете
			report.Days = append(report.Days, result)
			continue
		}

		ingested, err := s.Aggregator.Ingest(childID, deviceID, day, samples)
		if err != nil {
			result.Error = err.Error()
			report.Days = append(report.Days, result)
			continue
		}
		result.PackagesTouched = ingested.PackagesTouched
		result.RowsWritten = ingested.RowsWritten
		report.Days = append(report.Days, result)

		for pkg, ms := range DeduplicateSamples(samples) {
			if ms > observed[pkg] {
				observed[pkg] = ms
			}
		}
	}

	// Каталог приложений — best-effort обогащение после критического пути
	apps, catalogKnown, err := s.Source.FetchInstalledApps(ctx)
	if err != nil {
		report.CatalogError = err.Error()
		return report, nil
	}
	if err := s.Aggregator.ReconcileInstalledApps(childID, apps, observed, catalogKnown); err != nil {
		log.Printf("[SYNC] Catalog reconcile failed for child %s: %v", childID, err)
		report.CatalogError = err.Error()
	}

	return report, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
