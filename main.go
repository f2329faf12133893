package main

import (
	"PinguinPolicy/config"
	"PinguinPolicy/controllers"
	"PinguinPolicy/models"
	"PinguinPolicy/repositories"
	"PinguinPolicy/repositories/impl"
	"PinguinPolicy/routes"
	"PinguinPolicy/services"
	"PinguinPolicy/websocket"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Initialize database and Firebase
	config.InitDatabase()
	config.InitFirebase()

	// Initialize repositories
	ruleRepo := impl.NewTimeRuleRepository(config.DB)
	limitRepo := impl.NewLimitRepository(config.DB)
	usageRepo := impl.NewUsageRepository(config.DB)
	appRepo := impl.NewInstalledAppRepository(config.DB)
	overrideRepo := impl.NewOverrideRepository(config.DB)
	deviceRepo := impl.NewDeviceRepository(config.DB)

	// WebSocket hub для realtime-событий политики
	hub := websocket.NewHub()

	// Push-уведомления: без FCM сервер продолжает работать,
	// события уходят только по WebSocket
	notificationService, err := services.NewNotificationService(config.FirebaseApp, deviceRepo)
	if err != nil {
		log.Printf("[FCM] Push notifications disabled: %v", err)
		notificationService = nil
	}

	// Initialize services
	eventService := services.NewPolicyEventService(notificationService, hub, deviceRepo)
	overrideService := services.NewOverrideService(overrideRepo, eventService)
	policyService := services.NewPolicyService(ruleRepo, limitRepo, usageRepo, overrideService)
	aggregatorService := services.NewUsageAggregatorService(usageRepo, appRepo)
	policyConfigService := services.NewPolicyConfigService(ruleRepo, limitRepo, hub, deviceRepo)
	streakService := services.NewStreakService(limitRepo, usageRepo)

	// Set services in controllers
	controllers.SetPolicyService(policyService)
	controllers.SetOverrideService(overrideService)
	controllers.SetAggregatorService(aggregatorService)
	controllers.SetPolicyConfigService(policyConfigService)
	controllers.SetDeviceRepository(deviceRepo)
	controllers.SetWebSocketHub(hub)

	// Фоновая чистка: закрывает истекшие разрешения и раз в сутки
	// пересчитывает серии бонусов за прошедший день
	go runMaintenance(overrideService, streakService, limitRepo)

	// Initialize Gin router
	r := gin.Default()

	// Register routes
	routes.RegisterRoutes(r)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	r.Run(":" + port)
}

func runMaintenance(overrideService *services.OverrideService, streakService *services.StreakService, limitRepo repositories.LimitRepository) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	lastDate := time.Now().Format(models.UsageDateFormat)

	for range ticker.C {
		count, err := overrideService.ExpireStaleOverrides()
		if err != nil {
			log.Printf("[SWEEP] Failed to expire overrides: %v", err)
		} else if count > 0 {
			log.Printf("[SWEEP] Expired %d overrides", count)
		}

		// Смена даты: закрываем прошедший день и пересчитываем серии
		today := time.Now().Format(models.UsageDateFormat)
		if today == lastDate {
			continue
		}
		lastDate = today

		yesterday := time.Now().AddDate(0, 0, -1)
		childIDs, err := limitRepo.DistinctChildIDs()
		if err != nil {
			log.Printf("[STREAK] Failed to list children: %v", err)
			continue
		}
		for _, childID := range childIDs {
			if err := streakService.ReconcileStreaks(childID, yesterday); err != nil {
				log.Printf("[STREAK] Reconcile failed for %s: %v", childID, err)
			}
		}
	}
}
