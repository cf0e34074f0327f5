package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/store"
)

// ListReports returns the report-run history, newest first.
// GET /api/reports
func (h *Handler) ListReports(c *gin.Context) {
	runs, err := h.store.ListRuns(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list report runs"})
		return
	}
	if runs == nil {
		runs = []*model.ReportRun{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": runs})
}

// GetReport returns one run's metadata.
// GET /api/reports/:id
func (h *Handler) GetReport(c *gin.Context) {
	run, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report run"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// DeleteReport removes a run and its artifacts.
// DELETE /api/reports/:id
func (h *Handler) DeleteReport(c *gin.Context) {
	run, err := h.store.DeleteRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report run"})
		return
	}

	_ = os.Remove(run.HTMLPath)
	_ = os.Remove(run.XLSXPath)

	c.JSON(http.StatusOK, gin.H{"deleted": run.ID})
}

// ViewReportHTML serves a run's rendered pivot inline.
// GET /api/reports/:id/html
func (h *Handler) ViewReportHTML(c *gin.Context) {
	run, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report run"})
		return
	}

	data, err := os.ReadFile(run.HTMLPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report artifact no longer exists"})
		return
	}

	c.Data(http.StatusOK, htmlContentType, data)
}

// DownloadReportXLSX serves a run's xlsx artifact as an attachment.
// GET /api/reports/:id/xlsx
func (h *Handler) DownloadReportXLSX(c *gin.Context) {
	run, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report run"})
		return
	}

	if _, err := os.Stat(run.XLSXPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report artifact no longer exists"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(run.ID, "xlsx")))
	c.Header("Content-Type", xlsxContentType)
	c.File(run.XLSXPath)
}
