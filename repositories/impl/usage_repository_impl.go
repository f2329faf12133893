package impl

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepositoryImpl struct {
	DB *gorm.DB
}

func NewUsageRepository(db *gorm.DB) repositories.UsageRepository {
	return &UsageRepositoryImpl{DB: db}
}

func (r *UsageRepositoryImpl) UpsertDailyUsage(rows []models.DailyUsage) error {
	if len(rows) == 0 {
		return nil
	}

	// Все строки окна пишутся в одной транзакции: либо окно записано
	// целиком, либо нет. total_seconds сливается через GREATEST, поэтому
	// параллельные синхронизации пересекающихся окон сходятся к одному
	// максимуму, а повторная загрузка тех же данных ничего не меняет.
	// open_count в списке обновления отсутствует намеренно.
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "child_id"}, {Name: "package_name"}, {Name: "usage_date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"total_seconds":  gorm.Expr("GREATEST(daily_usages.total_seconds, EXCLUDED.total_seconds)"),
					"device_id":      rows[i].DeviceID,
					"last_synced_at": rows[i].LastSyncedAt,
				}),
			}).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UsageRepositoryImpl) FindUsageForDate(childID, usageDate string) ([]models.DailyUsage, error) {
	var rows []models.DailyUsage
	if err := r.DB.Where("child_id = ? AND usage_date = ?", childID, usageDate).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UsageRepositoryImpl) FindUsageForPackage(childID, packageName, usageDate string) (models.DailyUsage, error) {
	var row models.DailyUsage
	err := r.DB.Where("child_id = ? AND package_name = ? AND usage_date = ?", childID, packageName, usageDate).First(&row).Error
	if err != nil {
		return models.DailyUsage{}, err
	}
	return row, nil
}

func (r *UsageRepositoryImpl) IncrementOpenCount(childID, packageName, usageDate string) error {
	// Первое открытие за день приходит раньше первой синхронизации,
	// строки еще нет: upsert создает ее с нулевым временем. Поля времени
	// при конфликте не трогаются, ими владеет путь синхронизации.
	row := models.DailyUsage{
		ChildID:     childID,
		PackageName: packageName,
		UsageDate:   usageDate,
		OpenCount:   1,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "child_id"}, {Name: "package_name"}, {Name: "usage_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"open_count": gorm.Expr("daily_usages.open_count + 1"),
		}),
	}).Create(&row).Error
}
