package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Handler serves the operational endpoints that belong to no namespace.
type Handler struct {
	db *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

// HealthCheck reports process liveness and whether a store connection
// exists. Degraded mode (no store) is still "up".
func (h *Handler) HealthCheck(c *gin.Context) {
	store := "unavailable"
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err == nil {
			store = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
			"store":  store,
		},
	})
}
