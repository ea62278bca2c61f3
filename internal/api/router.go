package api

import (
	"github.com/gin-gonic/gin"

	"butler-alert-service/internal/config"
	"butler-alert-service/internal/logging"
)

func NewRouter(logger *logging.Logger, cfg config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	r.GET("/healthz", h.Healthz)

	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/households/:household_id/alerts", h.GetAlertsByHousehold)
		api.GET("/households/:household_id/alerts/stream", h.StreamAlerts)
		api.POST("/generation/run", h.TriggerGeneration)
	}
	return r
}
