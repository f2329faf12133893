package mocks

import (
	"PinguinPolicy/models"

	"github.com/stretchr/testify/mock"
)

// UsageRepository мок репозитория использования
type UsageRepository struct {
	mock.Mock
}

func (m *UsageRepository) UpsertDailyUsage(rows []models.DailyUsage) error {
	args := m.Called(rows)
	return args.Error(0)
}

func (m *UsageRepository) FindUsageForDate(childID, usageDate string) ([]models.DailyUsage, error) {
	args := m.Called(childID, usageDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyUsage), args.Error(1)
}

func (m *UsageRepository) FindUsageForPackage(childID, packageName, usageDate string) (models.DailyUsage, error) {
	args := m.Called(childID, packageName, usageDate)
	return args.Get(0).(models.DailyUsage), args.Error(1)
}

func (m *UsageRepository) IncrementOpenCount(childID, packageName, usageDate string) error {
	args := m.Called(childID, packageName, usageDate)
	return args.Error(0)
}
