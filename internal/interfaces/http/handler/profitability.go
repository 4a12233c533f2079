package handler

import (
	"github.com/fieldops/backend/internal/application/profitability"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/fieldops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfitabilityHandler serves report runs and persisted snapshots.
type ProfitabilityHandler struct {
	BaseHandler
	service *profitability.AnalysisService
}

// NewProfitabilityHandler creates a new ProfitabilityHandler.
func NewProfitabilityHandler(service *profitability.AnalysisService) *ProfitabilityHandler {
	return &ProfitabilityHandler{service: service}
}

// Prefix returns the path prefix this handler is mounted under.
func (h *ProfitabilityHandler) Prefix() string {
	return "/profitability"
}

// RegisterRoutes registers profitability routes on the given router group.
func (h *ProfitabilityHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/analyze", h.Analyze)
	r.POST("/snapshots", h.CreateSnapshot)
	r.GET("/snapshots", h.ListSnapshots)
	r.GET("/snapshots/:id", h.GetSnapshot)
}

// Analyze runs the engine for the requested period and returns the report
// without persisting anything.
func (h *ProfitabilityHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	report, err := h.service.Analyze(c.Request.Context(), req.toServiceRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReportResponse(report))
}

// CreateSnapshot runs the engine and persists the assembled report.
func (h *ProfitabilityHandler) CreateSnapshot(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	snapshot, err := h.service.AnalyzeAndSnapshot(c.Request.Context(), req.toServiceRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toSnapshotResponse(snapshot))
}

// ListSnapshots returns the most recent snapshots, headline figures only.
func (h *ProfitabilityHandler) ListSnapshots(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	snapshots, err := h.service.ListSnapshots(c.Request.Context(), req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]SnapshotResponse, 0, len(snapshots))
	for i := range snapshots {
		items = append(items, toSnapshotResponse(&snapshots[i]))
	}
	h.Success(c, items)
}

// GetSnapshot returns one snapshot including its full report payload.
func (h *ProfitabilityHandler) GetSnapshot(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	id, _ := uuid.Parse(req.ID)

	snapshot, err := h.service.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSnapshotResponse(snapshot))
}
