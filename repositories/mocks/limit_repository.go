package mocks

import (
	"PinguinPolicy/models"

	"github.com/stretchr/testify/mock"
)

// LimitRepository мок репозитория лимитов
type LimitRepository struct {
	mock.Mock
}

func (m *LimitRepository) FindDailyLimit(childID string) (models.DailyLimitSettings, error) {
	args := m.Called(childID)
	return args.Get(0).(models.DailyLimitSettings), args.Error(1)
}

func (m *LimitRepository) SaveDailyLimit(settings *models.DailyLimitSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *LimitRepository) FindAppLimit(childID, packageName string) (models.AppLimit, error) {
	args := m.Called(childID, packageName)
	return args.Get(0).(models.AppLimit), args.Error(1)
}

func (m *LimitRepository) FindAppLimits(childID string) ([]models.AppLimit, error) {
	args := m.Called(childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppLimit), args.Error(1)
}

func (m *LimitRepository) SaveAppLimit(limit *models.AppLimit) error {
	args := m.Called(limit)
	return args.Error(0)
}

func (m *LimitRepository) DistinctChildIDs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
