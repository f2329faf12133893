package impl

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepositoryImpl struct {
	DB *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) repositories.DeviceRepository {
	return &DeviceRepositoryImpl{DB: db}
}

func (r *DeviceRepositoryImpl) FindByUserID(userID string) (models.DeviceRegistration, error) {
	var registration models.DeviceRegistration
	if err := r.DB.Where("user_id = ?", userID).First(&registration).Error; err != nil {
		return models.DeviceRegistration{}, err
	}
	return registration, nil
}

func (r *DeviceRepositoryImpl) FindParentsByFamilyID(familyID string) ([]models.DeviceRegistration, error) {
	var registrations []models.DeviceRegistration
	err := r.DB.Where("family_id = ? AND role = ?", familyID, models.RoleParent).
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *DeviceRepositoryImpl) Save(registration *models.DeviceRegistration) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"family_id", "role", "device_token", "lang"}),
	}).Create(registration).Error
}
