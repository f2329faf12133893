package controllers

import (
	"net/http"
	"strconv"

	"PinguinPolicy/models"
	"PinguinPolicy/services"

	"github.com/gin-gonic/gin"
)

var policyConfigService *services.PolicyConfigService

func SetPolicyConfigService(service *services.PolicyConfigService) {
	policyConfigService = service
}

func requireParent(c *gin.Context) bool {
	userType, exists := c.Get("user_type")
	if !exists || userType.(string) != "parent" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only parents can manage policy"})
		return false
	}
	return true
}

// CreateTimeRule родитель создает временное правило (сон или учеба)
func CreateTimeRule(c *gin.Context) {
	if !requireParent(c) {
		return
	}

	var rule models.TimeRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := policyConfigService.CreateTimeRule(rule)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": true, "data": created})
}

// GetTimeRules возвращает правила ребенка
func GetTimeRules(c *gin.Context) {
	childID := c.Param("child_id")
	if childID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "child_id is required"})
		return
	}

	rules, err := policyConfigService.ListTimeRules(childID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": rules})
}

// DeleteTimeRule удаляет правило
func DeleteTimeRule(c *gin.Context) {
	if !requireParent(c) {
		return
	}

	ruleID, err := strconv.ParseUint(c.Param("rule_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule_id"})
		return
	}

	if err := policyConfigService.DeleteTimeRule(uint(ruleID)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted successfully"})
}

// SetDailyLimit родитель настраивает общий дневной лимит
func SetDailyLimit(c *gin.Context) {
	if !requireParent(c) {
		return
	}

	var settings models.DailyLimitSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings.ChildID = c.Param("child_id")

	saved, err := policyConfigService.SetDailyLimit(settings)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": saved})
}

// SetAppLimit родитель настраивает лимит приложения
func SetAppLimit(c *gin.Context) {
	if !requireParent(c) {
		return
	}

	var limit models.AppLimit
	if err := c.ShouldBindJSON(&limit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit.ChildID = c.Param("child_id")

	saved, err := policyConfigService.SetAppLimit(limit)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": saved})
}
