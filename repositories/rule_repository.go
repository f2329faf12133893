package repositories

import "PinguinPolicy/models"

type TimeRuleRepository interface {
	FindByChildID(childID string) ([]models.TimeRule, error)
	FindByID(id uint) (models.TimeRule, error)
	Save(rule *models.TimeRule) error
	DeleteByID(id uint) error
}
