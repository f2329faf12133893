package routes

import (
	"PinguinPolicy/controllers"
	"PinguinPolicy/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Точка принуждения: опрашивается устройством ребенка при каждом
	// выводе приложения на передний план
	policy := r.Group("/policy")
	policy.Use(middlewares.AuthMiddleware())
	{
		policy.GET("/check", controllers.CheckAppAccess)
	}

	// Маршрут WebSocket для realtime-событий политики
	r.GET("/ws", middlewares.AuthMiddleware(), controllers.ServeWs)

	// Привязка устройств
	devices := r.Group("/devices")
	devices.Use(middlewares.AuthMiddleware())
	{
		devices.POST("/register", controllers.RegisterDevice)
	}

	// Жизненный цикл запросов на дополнительное время
	overrides := r.Group("/overrides")
	overrides.Use(middlewares.AuthMiddleware())
	{
		overrides.POST("/requests", controllers.CreateOverrideRequest)
		overrides.GET("/requests/pending/:child_id", controllers.GetPendingRequests)
		overrides.POST("/requests/:request_id/grant", controllers.GrantOverrideRequest)
		overrides.POST("/requests/:request_id/deny", controllers.DenyOverrideRequest)
		overrides.DELETE("/:override_id", controllers.RevokeOverride)
		overrides.GET("/active/:child_id", controllers.GetActiveOverrides)
	}

	// Правила и лимиты настраиваются родителем
	rules := r.Group("/rules")
	rules.Use(middlewares.AuthMiddleware())
	{
		rules.POST("", controllers.CreateTimeRule)
		rules.GET("/:child_id", controllers.GetTimeRules)
		rules.DELETE("/id/:rule_id", controllers.DeleteTimeRule)
	}

	limits := r.Group("/limits")
	limits.Use(middlewares.AuthMiddleware())
	{
		limits.PUT("/daily/:child_id", controllers.SetDailyLimit)
		limits.PUT("/app/:child_id", controllers.SetAppLimit)
	}

	// Загрузка использования с устройства ребенка
	children := r.Group("/children")
	children.Use(middlewares.AuthMiddleware())
	{
		children.POST("/:firebase_uid/usage/sync", controllers.SyncUsage)
		children.POST("/:firebase_uid/usage/app-open", controllers.ReportAppOpen)
	}
}
