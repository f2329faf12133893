package controllers

import (
	"log"
	"net/http"

	"PinguinPolicy/websocket"

	"github.com/gin-gonic/gin"
)

var WebSocketHub *websocket.Hub

func SetWebSocketHub(hub *websocket.Hub) {
	WebSocketHub = hub
	go WebSocketHub.Run()
}

// ServeWs обрабатывает WebSocket запрос от клиента
func ServeWs(c *gin.Context) {
	// Получаем ID пользователя из токена
	userID, exists := c.Get("firebase_uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userType, exists := c.Get("user_type")
	if !exists {
		userType = "unknown"
	}

	familyID := c.Query("family_id")
	if familyID == "" {
		// Родитель подключается к собственной семье по умолчанию
		if userType == "parent" {
			familyID = userID.(string)
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "family_id is required"})
			return
		}
	}

	log.Printf("[WebSocket] user %s (%s) connecting to family %s",
		userID.(string), userType.(string), familyID)

	websocket.ServeWs(WebSocketHub, c.Writer, c.Request, userID.(string), familyID, userType.(string))
}
