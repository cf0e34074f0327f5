package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse system status.
type StatusResponse struct {
	Initialized bool   `json:"initialized"` // at least one report has been generated
	RunCount    int    `json:"runCount"`
	LastRunTime string `json:"lastRunTime"` // RFC3339, empty when no runs
}

// GetStatus reports whether any report runs exist.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count, err := h.store.CountRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count report runs"})
		return
	}

	lastRunTime := ""
	if count > 0 {
		if runs, err := h.store.ListRuns(1); err == nil && len(runs) > 0 {
			lastRunTime = runs[0].CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		}
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized: count > 0,
		RunCount:    count,
		LastRunTime: lastRunTime,
	})
}
