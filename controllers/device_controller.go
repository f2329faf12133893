package controllers

import (
	"net/http"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"github.com/gin-gonic/gin"
)

var deviceRepo repositories.DeviceRepository

func SetDeviceRepository(repo repositories.DeviceRepository) {
	deviceRepo = repo
}

// RegisterDevice привязывает устройство пользователя к семье и сохраняет
// токен для push-уведомлений
func RegisterDevice(c *gin.Context) {
	userID, exists := c.Get("firebase_uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing firebase_uid"})
		return
	}

	var request struct {
		FamilyID    string `json:"family_id" binding:"required"`
		Role        string `json:"role" binding:"required"`
		DeviceToken string `json:"device_token"`
		Lang        string `json:"lang"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Role != models.RoleParent && request.Role != models.RoleChild {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be parent or child"})
		return
	}

	registration := models.DeviceRegistration{
		UserID:      userID.(string),
		FamilyID:    request.FamilyID,
		Role:        request.Role,
		DeviceToken: request.DeviceToken,
		Lang:        request.Lang,
	}
	if err := deviceRepo.Save(&registration); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": registration})
}
