package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"PinguinPolicy/services"

	"github.com/gin-gonic/gin"
)

var overrideService *services.OverrideService

func SetOverrideService(service *services.OverrideService) {
	overrideService = service
}

// statusForError сопоставляет ошибки ядра с HTTP-статусами
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrDuplicateRequest):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateOverrideRequest ребенок просит дополнительное время
func CreateOverrideRequest(c *gin.Context) {
	var request struct {
		ChildID     string `json:"child_id" binding:"required"`
		PackageName string `json:"package_name" binding:"required"`
		AppName     string `json:"app_name"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := overrideService.CreateRequest(request.ChildID, request.PackageName, request.AppName)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": true, "data": req})
}

// GetPendingRequests очередь ожидающих запросов ребенка
func GetPendingRequests(c *gin.Context) {
	childID := c.Param("child_id")
	if childID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "child_id is required"})
		return
	}

	requests, err := overrideService.PendingRequests(childID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": requests})
}

// GrantOverrideRequest родитель одобряет запрос. Вариант "до конца дня"
// клиент заранее переводит в минуты до местной полуночи.
func GrantOverrideRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_id"})
		return
	}

	parentUID, exists := c.Get("firebase_uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing firebase_uid"})
		return
	}
	userType, exists := c.Get("user_type")
	if !exists || userType.(string) != "parent" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only parents can grant requests"})
		return
	}

	var request struct {
		DurationMinutes int    `json:"duration_minutes" binding:"required"`
		Note            string `json:"note"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, override, err := overrideService.Grant(uint(requestID), parentUID.(string), request.DurationMinutes, request.Note)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": gin.H{"request": req, "override": override}})
}

// DenyOverrideRequest родитель отклоняет запрос
func DenyOverrideRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_id"})
		return
	}

	parentUID, exists := c.Get("firebase_uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing firebase_uid"})
		return
	}
	userType, exists := c.Get("user_type")
	if !exists || userType.(string) != "parent" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only parents can deny requests"})
		return
	}

	var request struct {
		Note string `json:"note"`
	}
	// Тело с примечанием опционально
	_ = c.ShouldBindJSON(&request)

	req, err := overrideService.Deny(uint(requestID), parentUID.(string), request.Note)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": req})
}

// RevokeOverride родитель досрочно отзывает действующее разрешение
func RevokeOverride(c *gin.Context) {
	overrideID, err := strconv.ParseUint(c.Param("override_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid override_id"})
		return
	}

	parentUID, exists := c.Get("firebase_uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing firebase_uid"})
		return
	}
	userType, exists := c.Get("user_type")
	if !exists || userType.(string) != "parent" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only parents can revoke overrides"})
		return
	}

	override, err := overrideService.Revoke(uint(overrideID), parentUID.(string))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": override})
}

// GetActiveOverrides действующие разрешения ребенка; просроченные
// записи отфильтрованы лениво
func GetActiveOverrides(c *gin.Context) {
	childID := c.Param("child_id")
	if childID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "child_id is required"})
		return
	}

	overrides, err := overrideService.ActiveOverrides(childID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "data": overrides})
}
