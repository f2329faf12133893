package repositories

import (
	"time"

	"PinguinPolicy/models"
)

type OverrideRepository interface {
	CreateRequest(req *models.OverrideRequest) error
	SaveRequest(req *models.OverrideRequest) error
	FindRequestByID(id uint) (models.OverrideRequest, error)
	FindPendingRequest(childID, packageName string) (models.OverrideRequest, error)
	FindPendingRequests(childID string) ([]models.OverrideRequest, error)

	// GrantWithOverride выполняет одобрение в одной транзакции:
	// сохраняет запрос в статусе granted, помечает revoked все активные
	// разрешения той же пары (child_id, package_name) и вставляет новое.
	// Инвариант "не более одного active на пару" держится на этой
	// атомарности.
	GrantWithOverride(req *models.OverrideRequest, override *models.AppAccessOverride) error

	FindOverrideByID(id uint) (models.AppAccessOverride, error)
	FindActiveOverride(childID, packageName string) (models.AppAccessOverride, error)
	FindActiveOverrides(childID string) ([]models.AppAccessOverride, error)
	SaveOverride(override *models.AppAccessOverride) error

	// ExpireStale переводит просроченные active-записи в expired.
	// Только учет: читатели и без этого считают просроченные записи
	// неактивными.
	ExpireStale(now time.Time) (int64, error)
}
