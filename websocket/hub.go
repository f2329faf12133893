package websocket

import (
	"sync"
	"time"
)

// PolicyEvent событие политики, рассылаемое устройствам семьи
type PolicyEvent struct {
	Type        string            `json:"type"` // override_request, override_denied, policy_changed
	FamilyID    string            `json:"-"`
	ChildID     string            `json:"child_id"`
	PackageName string            `json:"package_name"`
	Data        map[string]string `json:"data,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Hub поддерживает активные соединения и рассылает события по семьям
type Hub struct {
	// Подключенные клиенты по ID семьи
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan PolicyEvent

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan PolicyEvent),
	}
}

// Register регистрирует нового клиента в хабе
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToFamily отправляет событие всем устройствам семьи
func (h *Hub) BroadcastToFamily(familyID, eventType, childID, packageName string, data map[string]string) {
	h.broadcast <- PolicyEvent{
		Type:        eventType,
		FamilyID:    familyID,
		ChildID:     childID,
		PackageName: packageName,
		Data:        data,
		Timestamp:   time.Now(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.FamilyID]; !ok {
				h.clients[client.FamilyID] = make(map[*Client]bool)
			}
			h.clients[client.FamilyID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.FamilyID]; ok {
				if _, registered := h.clients[client.FamilyID][client]; registered {
					delete(h.clients[client.FamilyID], client)
					close(client.send)
					if len(h.clients[client.FamilyID]) == 0 {
						delete(h.clients, client.FamilyID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			if clients, ok := h.clients[event.FamilyID]; ok {
				for client := range clients {
					select {
					case client.send <- event:
					default:
						close(client.send)
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.clients, event.FamilyID)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}
