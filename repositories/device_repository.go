package repositories

import "PinguinPolicy/models"

type DeviceRepository interface {
	FindByUserID(userID string) (models.DeviceRegistration, error)
	FindParentsByFamilyID(familyID string) ([]models.DeviceRegistration, error)
	Save(registration *models.DeviceRegistration) error
}
