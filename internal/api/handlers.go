package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"butler-alert-service/internal/db"
	"butler-alert-service/internal/engine"
	"butler-alert-service/internal/logging"
)

const defaultAlertLimit = 50

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Consumers are trusted operator tooling on the same network.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	db     *db.DB
	logger *logging.Logger
	engine *engine.Engine
	hub    *Hub
}

func NewHandler(db *db.DB, logger *logging.Logger, eng *engine.Engine, hub *Hub) *Handler {
	return &Handler{db: db, logger: logger, engine: eng, hub: hub}
}

// Healthz reports liveness plus a snapshot of the most recent cycle.
func (h *Handler) Healthz(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if stats, ok := h.engine.LastCycle(); ok {
		resp["last_cycle"] = stats
	}
	c.JSON(http.StatusOK, resp)
}

// GetAlertsByHousehold lists the most recent non-deleted alerts for a
// household, newest first.
func (h *Handler) GetAlertsByHousehold(c *gin.Context) {
	householdID, err := uuid.Parse(c.Param("household_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid household_id"})
		return
	}

	limit := defaultAlertLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	alerts, err := h.db.AlertsByHousehold(c.Request.Context(), householdID, limit)
	if err != nil {
		h.logger.Errorf("Failed to get alerts for household %s: %v", householdID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// TriggerGeneration runs a full generation cycle on demand. Returns 409 if a
// cycle is already in progress.
func (h *Handler) TriggerGeneration(c *gin.Context) {
	stats, err := h.engine.RunCycle(c.Request.Context())
	if err != nil {
		if errors.Is(err, engine.ErrCycleRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": "A generation cycle is already running"})
			return
		}
		h.logger.Errorf("Manual generation cycle failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation cycle failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// StreamAlerts upgrades to a WebSocket and streams alerts for one household
// as the engine creates them.
func (h *Handler) StreamAlerts(c *gin.Context) {
	householdID, err := uuid.Parse(c.Param("household_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid household_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed for household %s: %v", householdID, err)
		return
	}

	h.hub.AddConnection(householdID, conn)
	defer h.hub.RemoveConnection(householdID, conn)

	// Hold the connection open; the hub pushes writes. Reading drains
	// control frames and detects the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
