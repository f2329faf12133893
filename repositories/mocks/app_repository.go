package mocks

import (
	"PinguinPolicy/models"

	"github.com/stretchr/testify/mock"
)

// InstalledAppRepository мок репозитория каталога приложений
type InstalledAppRepository struct {
	mock.Mock
}

func (m *InstalledAppRepository) FindByChildID(childID string) ([]models.InstalledApp, error) {
	args := m.Called(childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InstalledApp), args.Error(1)
}

func (m *InstalledAppRepository) ReplaceCatalog(childID string, apps []models.InstalledApp) error {
	args := m.Called(childID, apps)
	return args.Error(0)
}
