package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи сообщения
	writeWait = 10 * time.Second

	// Время ожидания чтения сообщений от клиента
	pongWait = 60 * time.Second

	// Период отправки пингов
	pingPeriod = 5 * time.Second

	// Максимальный размер входящего сообщения
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client соединение одного устройства семьи. Канал событий
// односторонний: устройства только получают события политики, входящие
// сообщения кроме служебных игнорируются.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	UserID   string // Firebase UID пользователя
	FamilyID string
	Role     string // parent или child
	send     chan PolicyEvent
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, familyID, role string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		UserID:   userID,
		FamilyID: familyID,
		Role:     role,
		send:     make(chan PolicyEvent, 16),
	}
}

// ReadPump держит соединение и следит за его здоровьем
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		log.Printf("[WebSocket] Соединение закрыто для пользователя %s", c.UserID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Ошибка при чтении сообщения: %v", err)
			}
			break
		}
		// Входящие сообщения не обрабатываются: канал событий односторонний
	}
}

// WritePump отправляет события политики клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("[WebSocket] Error writing event to client %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs поднимает соединение и запускает насосы клиента
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID, familyID, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] Upgrade failed: %v", err)
		return
	}

	client := NewClient(hub, conn, userID, familyID, role)
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
