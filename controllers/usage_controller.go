package controllers

import (
	"net/http"
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/services"

	"github.com/gin-gonic/gin"
)

var aggregatorService *services.UsageAggregatorService

func SetAggregatorService(service *services.UsageAggregatorService) {
	aggregatorService = service
}

// SyncUsage устройство ребенка загружает сырые записи использования
// за один календарный день. Повторная загрузка того же окна безопасна.
func SyncUsage(c *gin.Context) {
	childID := c.Param("firebase_uid")
	if childID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "child ID is required"})
		return
	}

	var request struct {
		DeviceID  string               `json:"device_id"`
		UsageDate string               `json:"usage_date" binding:"required"` // Формат "2006-01-02"
		Samples   []models.UsageSample `json:"samples" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	day, err := time.ParseInLocation(models.UsageDateFormat, request.UsageDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid usage_date, expected YYYY-MM-DD"})
		return
	}

	result, err := aggregatorService.Ingest(childID, request.DeviceID, day, request.Samples)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": result})
}

// ReportAppOpen событие открытия приложения; увеличивает счетчик
// открытий, не трогая агрегированное время
func ReportAppOpen(c *gin.Context) {
	childID := c.Param("firebase_uid")
	var request struct {
		PackageName string `json:"package_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usageDate := time.Now().Format(models.UsageDateFormat)
	if err := aggregatorService.UsageRepo.IncrementOpenCount(childID, request.PackageName, usageDate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true})
}
