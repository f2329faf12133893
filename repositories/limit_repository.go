package repositories

import "PinguinPolicy/models"

type LimitRepository interface {
	FindDailyLimit(childID string) (models.DailyLimitSettings, error)
	SaveDailyLimit(settings *models.DailyLimitSettings) error
	FindAppLimit(childID, packageName string) (models.AppLimit, error)
	FindAppLimits(childID string) ([]models.AppLimit, error)
	SaveAppLimit(limit *models.AppLimit) error
	// DistinctChildIDs дети, у которых настроен хотя бы один лимит
	// приложения; используется ночным пересчетом серий
	DistinctChildIDs() ([]string, error)
}
