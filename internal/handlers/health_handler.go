package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	airtableDegraded func() bool
}

func NewHealthHandler(airtableDegraded func() bool) *HealthHandler {
	return &HealthHandler{
		airtableDegraded: airtableDegraded,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	// The service still answers while Airtable is unreachable, it just
	// serves degraded responses; report that state without failing the check
	if h.airtableDegraded() {
		c.JSON(http.StatusOK, gin.H{
			"status":   "degraded",
			"airtable": "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
