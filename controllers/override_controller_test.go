package controllers

import (
	"PinguinPolicy/models"
	"PinguinPolicy/repositories/mocks"
	"PinguinPolicy/services"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Настройка роутера с подставной аутентификацией
func setupOverrideTestRouter(mockRepo *mocks.OverrideRepository, userType string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	SetOverrideService(services.NewOverrideService(mockRepo, nil))

	router.Use(func(c *gin.Context) {
		c.Set("firebase_uid", "parent1")
		c.Set("user_type", userType)
		c.Next()
	})

	router.POST("/overrides/requests", CreateOverrideRequest)
	router.POST("/overrides/requests/:request_id/grant", GrantOverrideRequest)
	router.POST("/overrides/requests/:request_id/deny", DenyOverrideRequest)
	router.DELETE("/overrides/:override_id", RevokeOverride)
	return router
}

func TestCreateOverrideRequestEndpoint(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "child")

	mockRepo.On("FindPendingRequest", "child1", "com.example.game").
		Return(models.OverrideRequest{}, gorm.ErrRecordNotFound)
	mockRepo.On("CreateRequest", mock.Anything).Return(nil)

	body, _ := json.Marshal(gin.H{
		"child_id":     "child1",
		"package_name": "com.example.game",
		"app_name":     "Game",
	})
	req, _ := http.NewRequest("POST", "/overrides/requests", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestCreateOverrideRequestDuplicateConflict(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "child")

	existing := models.OverrideRequest{ID: 7, Status: models.RequestStatusPending}
	mockRepo.On("FindPendingRequest", "child1", "com.example.game").Return(existing, nil)

	body, _ := json.Marshal(gin.H{
		"child_id":     "child1",
		"package_name": "com.example.game",
	})
	req, _ := http.NewRequest("POST", "/overrides/requests", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Повторный запрос при ожидающем дает 409
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGrantOverrideRequestEndpoint(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "parent")

	pending := models.OverrideRequest{
		ID:          7,
		ChildID:     "child1",
		PackageName: "com.example.game",
		Status:      models.RequestStatusPending,
	}
	mockRepo.On("FindRequestByID", uint(7)).Return(pending, nil)
	mockRepo.On("GrantWithOverride", mock.Anything, mock.MatchedBy(func(override *models.AppAccessOverride) bool {
		return override.DurationMinutes == 30 && override.Status == models.OverrideStatusActive
	})).Return(nil)

	body, _ := json.Marshal(gin.H{"duration_minutes": 30, "note": "ok"})
	req, _ := http.NewRequest("POST", "/overrides/requests/7/grant", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestGrantOverrideRequestChildForbidden(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "child")

	body, _ := json.Marshal(gin.H{"duration_minutes": 30})
	req, _ := http.NewRequest("POST", "/overrides/requests/7/grant", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Одобрять запросы может только родитель
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "FindRequestByID", mock.Anything)
}

func TestGrantOverrideRequestAlreadyResolved(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "parent")

	denied := models.OverrideRequest{ID: 7, Status: models.RequestStatusDenied}
	mockRepo.On("FindRequestByID", uint(7)).Return(denied, nil)

	body, _ := json.Marshal(gin.H{"duration_minutes": 30})
	req, _ := http.NewRequest("POST", "/overrides/requests/7/grant", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRevokeOverrideEndpoint(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "parent")

	active := models.AppAccessOverride{
		ID:        3,
		Status:    models.OverrideStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	mockRepo.On("FindOverrideByID", uint(3)).Return(active, nil)
	mockRepo.On("SaveOverride", mock.Anything).Return(nil)

	req, _ := http.NewRequest("DELETE", "/overrides/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestRevokeOverrideNotFound(t *testing.T) {
	mockRepo := new(mocks.OverrideRepository)
	router := setupOverrideTestRouter(mockRepo, "parent")

	mockRepo.On("FindOverrideByID", uint(99)).
		Return(models.AppAccessOverride{}, gorm.ErrRecordNotFound)

	req, _ := http.NewRequest("DELETE", "/overrides/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
