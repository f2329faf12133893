package mocks

import (
	"PinguinPolicy/models"

	"github.com/stretchr/testify/mock"
)

// DeviceRepository мок репозитория привязки устройств
type DeviceRepository struct {
	mock.Mock
}

func (m *DeviceRepository) FindByUserID(userID string) (models.DeviceRegistration, error) {
	args := m.Called(userID)
	return args.Get(0).(models.DeviceRegistration), args.Error(1)
}

func (m *DeviceRepository) FindParentsByFamilyID(familyID string) ([]models.DeviceRegistration, error) {
	args := m.Called(familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DeviceRegistration), args.Error(1)
}

func (m *DeviceRepository) Save(registration *models.DeviceRegistration) error {
	args := m.Called(registration)
	return args.Error(0)
}
