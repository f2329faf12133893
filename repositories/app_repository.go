package repositories

import "PinguinPolicy/models"

type InstalledAppRepository interface {
	FindByChildID(childID string) ([]models.InstalledApp, error)
	// ReplaceCatalog заменяет каталог приложений ребенка в одной транзакции
	ReplaceCatalog(childID string, apps []models.InstalledApp) error
}
