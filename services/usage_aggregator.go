package services

import (
	"fmt"
	"sort"
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"
)

// IngestResult итог записи одного окна синхронизации
type IngestResult struct {
	PackagesTouched int `json:"packages_touched"`
	RowsWritten     int `json:"rows_written"`
}

// UsageAggregatorService превращает сырые записи использования в
// идемпотентные дневные итоги.
type UsageAggregatorService struct {
	UsageRepo repositories.UsageRepository
	AppRepo   repositories.InstalledAppRepository
}

func NewUsageAggregatorService(usageRepo repositories.UsageRepository, appRepo repositories.InstalledAppRepository) *UsageAggregatorService {
	return &UsageAggregatorService{UsageRepo: usageRepo, AppRepo: appRepo}
}

// DeduplicateSamples группирует записи по пакету, отбрасывая
// неположительные, и берет МАКСИМУМ среди дубликатов одного окна.
// ОС отдает пересекающиеся записи, суммирование удвоило бы время.
func DeduplicateSamples(samples []models.UsageSample) map[string]int64 {
	byPackage := make(map[string]int64)
	for _, sample := range samples {
		if sample.TotalTimeMs <= 0 || sample.PackageName == "" {
			continue
		}
		if sample.TotalTimeMs > byPackage[sample.PackageName] {
			byPackage[sample.PackageName] = sample.TotalTimeMs
		}
	}
	return byPackage
}

// roundMsToSeconds миллисекунды в целые секунды с округлением к ближайшей
func roundMsToSeconds(ms int64) int {
	return int((ms + 500) / 1000)
}

// Ingest записывает агрегированное использование одного календарного дня.
// Повторная загрузка тех же записей дает то же сохраненное состояние.
// Ошибка хранилища отменяет запись всего окна и возвращается как
// ErrIngestionFailed.
func (s *UsageAggregatorService) Ingest(childID, deviceID string, day time.Time, samples []models.UsageSample) (IngestResult, error) {
	if childID == "" {
		return IngestResult{}, fmt.Errorf("%w: child_id is required", ErrValidation)
	}

	byPackage := DeduplicateSamples(samples)
	if len(byPackage) == 0 {
		return IngestResult{}, nil
	}

	// Детерминированный порядок строк в транзакции
	packages := make([]string, 0, len(byPackage))
	for pkg := range byPackage {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	usageDate := day.Format(models.UsageDateFormat)
	syncedAt := time.Now()
	rows := make([]models.DailyUsage, 0, len(packages))
	for _, pkg := range packages {
		rows = append(rows, models.DailyUsage{
			ChildID:      childID,
			PackageName:  pkg,
			UsageDate:    usageDate,
			TotalSeconds: roundMsToSeconds(byPackage[pkg]),
			LastSyncedAt: syncedAt,
			DeviceID:     deviceID,
		})
	}

	if err := s.UsageRepo.UpsertDailyUsage(rows); err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrIngestionFailed, err)
	}

	return IngestResult{PackagesTouched: len(packages), RowsWritten: len(rows)}, nil
}

// ReconcileInstalledApps сверяет каталог приложений ребенка.
// Если устройство сообщило полный каталог, сохраняется он целиком.
// Без каталога сохраняются только приложения с ненулевым наблюдаемым
// использованием либо не помеченные системными, чтобы не тащить каждый
// предустановленный пакет без сигнала.
func (s *UsageAggregatorService) ReconcileInstalledApps(childID string, reported []models.InstalledApp, observedUsage map[string]int64, catalogKnown bool) error {
	if catalogKnown && len(reported) > 0 {
		return s.AppRepo.ReplaceCatalog(childID, reported)
	}

	kept := make([]models.InstalledApp, 0, len(reported))
	for _, app := range reported {
		if observedUsage[app.PackageName] > 0 || !app.IsSystemApp {
			kept = append(kept, app)
		}
	}
	return s.AppRepo.ReplaceCatalog(childID, kept)
}
