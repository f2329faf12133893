package controllers

import (
	"net/http"
	"time"

	"PinguinPolicy/services"

	"github.com/gin-gonic/gin"
)

var policyService *services.PolicyService

func SetPolicyService(service *services.PolicyService) {
	policyService = service
}

// CheckAppAccess точка принуждения: устройство ребенка спрашивает,
// можно ли выводить приложение на передний план
func CheckAppAccess(c *gin.Context) {
	childID := c.Query("child_id")
	if childID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "child_id is required"})
		return
	}

	appPackage := c.Query("app_package")
	if appPackage == "" {
		// Проверяем альтернативное имя параметра
		appPackage = c.Query("package")
		if appPackage == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "app_package is required"})
			return
		}
	}

	decision, err := policyService.Decide(childID, appPackage, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, decision)
}
