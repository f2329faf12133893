package impl

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

type InstalledAppRepositoryImpl struct {
	DB *gorm.DB
}

func NewInstalledAppRepository(db *gorm.DB) repositories.InstalledAppRepository {
	return &InstalledAppRepositoryImpl{DB: db}
}

func (r *InstalledAppRepositoryImpl) FindByChildID(childID string) ([]models.InstalledApp, error) {
	var apps []models.InstalledApp
	if err := r.DB.Where("child_id = ?", childID).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *InstalledAppRepositoryImpl) ReplaceCatalog(childID string, apps []models.InstalledApp) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", childID).Delete(&models.InstalledApp{}).Error; err != nil {
			return err
		}
		if len(apps) == 0 {
			return nil
		}
		return tx.Create(&apps).Error
	})
}
