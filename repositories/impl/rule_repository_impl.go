package impl

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

type TimeRuleRepositoryImpl struct {
	DB *gorm.DB
}

func NewTimeRuleRepository(db *gorm.DB) repositories.TimeRuleRepository {
	return &TimeRuleRepositoryImpl{DB: db}
}

func (r *TimeRuleRepositoryImpl) FindByChildID(childID string) ([]models.TimeRule, error) {
	var rules []models.TimeRule
	if err := r.DB.Where("child_id = ?", childID).Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *TimeRuleRepositoryImpl) FindByID(id uint) (models.TimeRule, error) {
	var rule models.TimeRule
	if err := r.DB.First(&rule, id).Error; err != nil {
		return models.TimeRule{}, err
	}
	return rule, nil
}

func (r *TimeRuleRepositoryImpl) Save(rule *models.TimeRule) error {
	return r.DB.Save(rule).Error
}

func (r *TimeRuleRepositoryImpl) DeleteByID(id uint) error {
	return r.DB.Delete(&models.TimeRule{}, id).Error
}
