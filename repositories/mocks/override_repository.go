package mocks

import (
	"time"

	"PinguinPolicy/models"

	"github.com/stretchr/testify/mock"
)

// OverrideRepository мок репозитория запросов и разрешений
type OverrideRepository struct {
	mock.Mock
}

func (m *OverrideRepository) CreateRequest(req *models.OverrideRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *OverrideRepository) SaveRequest(req *models.OverrideRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *OverrideRepository) FindRequestByID(id uint) (models.OverrideRequest, error) {
	args := m.Called(id)
	return args.Get(0).(models.OverrideRequest), args.Error(1)
}

func (m *OverrideRepository) FindPendingRequest(childID, packageName string) (models.OverrideRequest, error) {
	args := m.Called(childID, packageName)
	return args.Get(0).(models.OverrideRequest), args.Error(1)
}

func (m *OverrideRepository) FindPendingRequests(childID string) ([]models.OverrideRequest, error) {
	args := m.Called(childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OverrideRequest), args.Error(1)
}

func (m *OverrideRepository) GrantWithOverride(req *models.OverrideRequest, override *models.AppAccessOverride) error {
	args := m.Called(req, override)
	return args.Error(0)
}

func (m *OverrideRepository) FindOverrideByID(id uint) (models.AppAccessOverride, error) {
	args := m.Called(id)
	return args.Get(0).(models.AppAccessOverride), args.Error(1)
}

func (m *OverrideRepository) FindActiveOverride(childID, packageName string) (models.AppAccessOverride, error) {
	args := m.Called(childID, packageName)
	return args.Get(0).(models.AppAccessOverride), args.Error(1)
}

func (m *OverrideRepository) FindActiveOverrides(childID string) ([]models.AppAccessOverride, error) {
	args := m.Called(childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppAccessOverride), args.Error(1)
}

func (m *OverrideRepository) SaveOverride(override *models.AppAccessOverride) error {
	args := m.Called(override)
	return args.Error(0)
}

func (m *OverrideRepository) ExpireStale(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}
