package impl

import (
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

type OverrideRepositoryImpl struct {
	DB *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) repositories.OverrideRepository {
	return &OverrideRepositoryImpl{DB: db}
}

func (r *OverrideRepositoryImpl) CreateRequest(req *models.OverrideRequest) error {
	return r.DB.Create(req).Error
}

func (r *OverrideRepositoryImpl) SaveRequest(req *models.OverrideRequest) error {
	return r.DB.Save(req).Error
}

func (r *OverrideRepositoryImpl) FindRequestByID(id uint) (models.OverrideRequest, error) {
	var req models.OverrideRequest
	if err := r.DB.First(&req, id).Error; err != nil {
		return models.OverrideRequest{}, err
	}
	return req, nil
}

func (r *OverrideRepositoryImpl) FindPendingRequest(childID, packageName string) (models.OverrideRequest, error) {
	var req models.OverrideRequest
	err := r.DB.Where("child_id = ? AND package_name = ? AND status = ?",
		childID, packageName, models.RequestStatusPending).First(&req).Error
	if err != nil {
		return models.OverrideRequest{}, err
	}
	return req, nil
}

func (r *OverrideRepositoryImpl) FindPendingRequests(childID string) ([]models.OverrideRequest, error) {
	var requests []models.OverrideRequest
	err := r.DB.Where("child_id = ? AND status = ?", childID, models.RequestStatusPending).
		Order("requested_at ASC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *OverrideRepositoryImpl) GrantWithOverride(req *models.OverrideRequest, override *models.AppAccessOverride) error {
	// Одна транзакция на "вытеснить и вставить": параллельный читатель
	// никогда не увидит два active-разрешения для одной пары.
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		err := tx.Model(&models.AppAccessOverride{}).
			Where("child_id = ? AND package_name = ? AND status = ?",
				override.ChildID, override.PackageName, models.OverrideStatusActive).
			Update("status", models.OverrideStatusRevoked).Error
		if err != nil {
			return err
		}
		return tx.Create(override).Error
	})
}

func (r *OverrideRepositoryImpl) FindOverrideByID(id uint) (models.AppAccessOverride, error) {
	var override models.AppAccessOverride
	if err := r.DB.First(&override, id).Error; err != nil {
		return models.AppAccessOverride{}, err
	}
	return override, nil
}

func (r *OverrideRepositoryImpl) FindActiveOverride(childID, packageName string) (models.AppAccessOverride, error) {
	var override models.AppAccessOverride
	err := r.DB.Where("child_id = ? AND package_name = ? AND status = ?",
		childID, packageName, models.OverrideStatusActive).First(&override).Error
	if err != nil {
		return models.AppAccessOverride{}, err
	}
	return override, nil
}

func (r *OverrideRepositoryImpl) FindActiveOverrides(childID string) ([]models.AppAccessOverride, error) {
	var overrides []models.AppAccessOverride
	err := r.DB.Where("child_id = ? AND status = ?", childID, models.OverrideStatusActive).
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *OverrideRepositoryImpl) SaveOverride(override *models.AppAccessOverride) error {
	return r.DB.Save(override).Error
}

func (r *OverrideRepositoryImpl) ExpireStale(now time.Time) (int64, error) {
	result := r.DB.Model(&models.AppAccessOverride{}).
		Where("status = ? AND expires_at <= ?", models.OverrideStatusActive, now).
		Update("status", models.OverrideStatusExpired)
	return result.RowsAffected, result.Error
}
