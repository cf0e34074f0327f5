// Package api exposes the HTTP API: report generation, run history and
// artifact downloads.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/config"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/store"
)

// Handler carries the dependencies of the API handlers.
type Handler struct {
	cfg       *config.AppConfig
	store     *store.Store
	downloads *downloadStore
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig, store *store.Store) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     store,
		downloads: newDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// System status
	router.GET("/status", h.GetStatus)

	// Report generation
	router.POST("/report", h.GenerateReport)

	// Run history
	router.GET("/reports", h.ListReports)
	router.GET("/reports/:id", h.GetReport)
	router.DELETE("/reports/:id", h.DeleteReport)
	router.GET("/reports/:id/html", h.ViewReportHTML)
	router.GET("/reports/:id/xlsx", h.DownloadReportXLSX)

	// One-shot downloads of freshly generated artifacts
	router.GET("/export/download/:token", h.DownloadExport)
}
