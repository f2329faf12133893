package mocks

import (
	"PinguinPolicy/models"

	"github.com/stretchr/testify/mock"
)

// TimeRuleRepository мок репозитория временных правил
type TimeRuleRepository struct {
	mock.Mock
}

func (m *TimeRuleRepository) FindByChildID(childID string) ([]models.TimeRule, error) {
	args := m.Called(childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeRule), args.Error(1)
}

func (m *TimeRuleRepository) FindByID(id uint) (models.TimeRule, error) {
	args := m.Called(id)
	return args.Get(0).(models.TimeRule), args.Error(1)
}

func (m *TimeRuleRepository) Save(rule *models.TimeRule) error {
	args := m.Called(rule)
	return args.Error(0)
}

func (m *TimeRuleRepository) DeleteByID(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}
