package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	db      *gorm.DB
	service string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, service string) *HealthHandler {
	return &HealthHandler{db: db, service: service}
}

// RegisterRoutes registers the health endpoints on the router.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Live)
	r.GET("/health/ready", h.Ready)
}

// Live handles GET /health.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.service})
}

// Ready handles GET /health/ready, reporting whether the database is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "service": h.service})
}
