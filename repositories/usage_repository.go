package repositories

import "PinguinPolicy/models"

type UsageRepository interface {
	// UpsertDailyUsage записывает агрегированные строки одного окна
	// атомарно: либо все строки, либо ни одной. Конфликтующие строки
	// обновляются только по total_seconds, device_id и last_synced_at,
	// open_count при слиянии не затирается.
	UpsertDailyUsage(rows []models.DailyUsage) error
	FindUsageForDate(childID, usageDate string) ([]models.DailyUsage, error)
	FindUsageForPackage(childID, packageName, usageDate string) (models.DailyUsage, error)
	// IncrementOpenCount увеличивает счетчик открытий; вызывается только
	// событием открытия приложения, не путем агрегации.
	IncrementOpenCount(childID, packageName, usageDate string) error
}
