package impl

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LimitRepositoryImpl struct {
	DB *gorm.DB
}

func NewLimitRepository(db *gorm.DB) repositories.LimitRepository {
	return &LimitRepositoryImpl{DB: db}
}

func (r *LimitRepositoryImpl) FindDailyLimit(childID string) (models.DailyLimitSettings, error) {
	var settings models.DailyLimitSettings
	if err := r.DB.Where("child_id = ?", childID).First(&settings).Error; err != nil {
		return models.DailyLimitSettings{}, err
	}
	return settings, nil
}

func (r *LimitRepositoryImpl) SaveDailyLimit(settings *models.DailyLimitSettings) error {
	// Настройки уникальны по child_id, повторная запись обновляет их
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "child_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_seconds", "weekend_bonus_seconds"}),
	}).Create(settings).Error
}

func (r *LimitRepositoryImpl) FindAppLimit(childID, packageName string) (models.AppLimit, error) {
	var limit models.AppLimit
	if err := r.DB.Where("child_id = ? AND package_name = ?", childID, packageName).First(&limit).Error; err != nil {
		return models.AppLimit{}, err
	}
	return limit, nil
}

func (r *LimitRepositoryImpl) FindAppLimits(childID string) ([]models.AppLimit, error) {
	var limits []models.AppLimit
	if err := r.DB.Where("child_id = ?", childID).Find(&limits).Error; err != nil {
		return nil, err
	}
	return limits, nil
}

func (r *LimitRepositoryImpl) DistinctChildIDs() ([]string, error) {
	var childIDs []string
	err := r.DB.Model(&models.AppLimit{}).Distinct("child_id").Pluck("child_id", &childIDs).Error
	if err != nil {
		return nil, err
	}
	return childIDs, nil
}

func (r *LimitRepositoryImpl) SaveAppLimit(limit *models.AppLimit) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "child_id"}, {Name: "package_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"limit_seconds", "applies_days", "bonus_enabled", "bonus_seconds",
			"bonus_streak_target_days", "streak_days",
		}),
	}).Create(limit).Error
}
