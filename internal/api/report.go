package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/config"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/exporter"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/parser"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/renderer"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/service/report"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	htmlContentType = "text/html; charset=utf-8"
	downloadTTL     = 10 * time.Minute
)

// GenerateReportResponse is the result of a successful generation.
type GenerateReportResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	ApptRows     int       `json:"apptRows"`
	PivotRows    int       `json:"pivotRows"`
	Weeks        int       `json:"weeks"`
	HTMLURL      string    `json:"htmlUrl"`
	XLSXURL      string    `json:"xlsxUrl"`
	DownloadHTML string    `json:"downloadHtml"` // one-shot token URL
	DownloadXLSX string    `json:"downloadXlsx"` // one-shot token URL
}

// GenerateReport runs the pipeline on the two uploaded workbooks.
// POST /api/report (multipart: "appointments", "roster")
func (h *Handler) GenerateReport(c *gin.Context) {
	apptFile, apptErr := c.FormFile("appointments")
	rosterFile, rosterErr := c.FormFile("roster")
	if apptErr != nil || rosterErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "both the appointment file and the roster file must be uploaded",
		})
		return
	}

	result, err := h.buildFromUploads(apptFile, rosterFile)
	if err != nil {
		status := http.StatusInternalServerError
		var missing *parser.MissingColumnsError
		if errors.As(err, &missing) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	run := &model.ReportRun{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		ApptFilename:   apptFile.Filename,
		RosterFilename: rosterFile.Filename,
		ApptRows:       result.ApptRows,
		PivotRows:      len(result.Report.Rows),
		Weeks:          result.Weeks,
	}

	if err := h.saveArtifacts(run, result.Report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.InsertRun(run); err != nil {
		// A run either produces both artifacts and a history row, or nothing
		_ = os.Remove(run.HTMLPath)
		_ = os.Remove(run.XLSXPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record report run"})
		return
	}

	h.pruneHistory()

	htmlToken := h.downloads.put(run.HTMLPath, htmlContentType, exportFilename(run.ID, "html"), downloadTTL)
	xlsxToken := h.downloads.put(run.XLSXPath, xlsxContentType, exportFilename(run.ID, "xlsx"), downloadTTL)

	c.JSON(http.StatusOK, GenerateReportResponse{
		ID:           run.ID,
		CreatedAt:    run.CreatedAt,
		ApptRows:     run.ApptRows,
		PivotRows:    run.PivotRows,
		Weeks:        run.Weeks,
		HTMLURL:      fmt.Sprintf("/api/reports/%s/html", run.ID),
		XLSXURL:      fmt.Sprintf("/api/reports/%s/xlsx", run.ID),
		DownloadHTML: "/api/export/download/" + htmlToken,
		DownloadXLSX: "/api/export/download/" + xlsxToken,
	})
}

// buildFromUploads opens both multipart files and runs the pipeline.
func (h *Handler) buildFromUploads(apptFile, rosterFile *multipart.FileHeader) (*report.Result, error) {
	appt, err := apptFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read appointment upload: %w", err)
	}
	defer appt.Close()

	roster, err := rosterFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster upload: %w", err)
	}
	defer roster.Close()

	return report.Build(appt, roster)
}

// saveArtifacts renders and writes both artifacts under data/exports.
func (h *Handler) saveArtifacts(run *model.ReportRun, pivot *model.PivotReport) error {
	if _, err := config.EnsureDataDir(h.cfg); err != nil {
		return fmt.Errorf("failed to prepare data directory: %w", err)
	}

	htmlPath := config.GetDataPath(h.cfg, "exports", exportFilename(run.ID, "html"))
	html := renderer.RenderHTML(pivot)
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML artifact: %w", err)
	}

	xlsxPath := config.GetDataPath(h.cfg, "exports", exportFilename(run.ID, "xlsx"))
	wb, err := exporter.Export(pivot)
	if err != nil {
		return fmt.Errorf("failed to build xlsx export: %w", err)
	}
	defer wb.Close()
	if err := wb.SaveAs(xlsxPath); err != nil {
		return fmt.Errorf("failed to write xlsx artifact: %w", err)
	}

	run.HTMLPath = htmlPath
	run.XLSXPath = xlsxPath
	return nil
}

// pruneHistory enforces data.keep_history, removing pruned artifacts.
func (h *Handler) pruneHistory() {
	pruned, err := h.store.PruneRuns(h.cfg.Data.KeepHistory)
	if err != nil {
		return
	}
	for _, run := range pruned {
		_ = os.Remove(run.HTMLPath)
		_ = os.Remove(run.XLSXPath)
	}
}

func exportFilename(runID, ext string) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("weekly-cancellation-pivot-%s.%s", short, ext)
}

// DownloadExport serves a one-shot download token.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file no longer exists"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.filename))
	c.Header("Content-Type", item.contentType)
	c.File(item.filePath)

	h.downloads.delete(token)
}
