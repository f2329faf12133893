package models

import "time"

// UsageSample сырая запись использования приложения, как ее отдает
// устройство за окно запроса. Записи НЕ уникальны: источник может
// вернуть несколько записей для одного пакета в одном окне.
type UsageSample struct {
	PackageName   string `json:"package_name"`
	TotalTimeMs   int64  `json:"total_time_ms"`
	WindowStartMs int64  `json:"window_start_ms"`
	WindowEndMs   int64  `json:"window_end_ms"`
}

// DailyUsage агрегированное использование приложения за календарный день.
// Ключ (child_id, package_name, usage_date) уникален; total_seconds
// устанавливается максимумом наблюдаемых значений, а не суммой
// дубликатов, чтобы не удваивать время из повторяющихся записей ОС.
type DailyUsage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ChildID      string    `json:"child_id" gorm:"uniqueIndex:idx_daily_usage_key"`
	PackageName  string    `json:"package_name" gorm:"uniqueIndex:idx_daily_usage_key"`
	UsageDate    string    `json:"usage_date" gorm:"uniqueIndex:idx_daily_usage_key"` // Формат "2006-01-02"
	TotalSeconds int       `json:"total_seconds"`
	OpenCount    int       `json:"open_count"` // Обновляется только событиями открытия приложения
	LastSyncedAt time.Time `json:"last_synced_at"`
	DeviceID     string    `json:"device_id"`
}

// UsageDateFormat формат даты для DailyUsage.UsageDate
const UsageDateFormat = "2006-01-02"

// InstalledApp запись каталога установленных приложений ребенка
type InstalledApp struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ChildID     string `json:"child_id" gorm:"uniqueIndex:idx_installed_app_key"`
	PackageName string `json:"package_name" gorm:"uniqueIndex:idx_installed_app_key"`
	AppName     string `json:"app_name"`
	Category    string `json:"category"`
	IsSystemApp bool   `json:"is_system_app"`
}
