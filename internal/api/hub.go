package api

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"butler-alert-service/internal/logging"
	"butler-alert-service/internal/models"
)

// maxConnsPerHousehold caps open sockets per household.
const maxConnsPerHousehold = 10

// Hub fans committed alerts out to the WebSocket connections of their
// household. It implements engine.Sink.
type Hub struct {
	connections map[uuid.UUID]map[*websocket.Conn]bool
	mutex       sync.Mutex
	logger      *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// AddConnection registers a WebSocket connection for a household.
func (h *Hub) AddConnection(householdID uuid.UUID, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.connections[householdID]; !exists {
		h.connections[householdID] = make(map[*websocket.Conn]bool)
	}
	if len(h.connections[householdID]) >= maxConnsPerHousehold {
		h.logger.Warnf("Max stream connections reached for household %s", householdID)
		conn.Close()
		return
	}
	h.connections[householdID][conn] = true
	h.logger.Infof("Added stream connection for household %s (total: %d)", householdID, len(h.connections[householdID]))
}

// RemoveConnection deregisters a WebSocket connection for a household.
func (h *Hub) RemoveConnection(householdID uuid.UUID, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if conns, exists := h.connections[householdID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, householdID)
		}
	}
	conn.Close()
}

// AlertsCreated pushes each committed alert to its household's connections.
// Broken connections are dropped.
func (h *Hub) AlertsCreated(alerts []models.Alert) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, a := range alerts {
		conns, exists := h.connections[a.HouseholdID]
		if !exists {
			continue
		}
		payload, err := json.Marshal(a)
		if err != nil {
			h.logger.Errorf("Failed to marshal alert %s for stream: %v", a.ID, err)
			continue
		}
		for conn := range conns {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Warnf("Dropping stream connection for household %s: %v", a.HouseholdID, err)
				conn.Close()
				delete(conns, conn)
			}
		}
		if len(conns) == 0 {
			delete(h.connections, a.HouseholdID)
		}
	}
}
