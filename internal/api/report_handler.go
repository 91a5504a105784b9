package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/service"
)

// ReportHandler serves history and dashboard aggregates
type ReportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(services *service.Services, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		services: services,
		log:      log.With().Str("handler", "report").Logger(),
	}
}

// Dashboard handles GET /v1/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summaries, alerts, err := h.services.Report.DashboardSummaries(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": summaries,
		"alerts":    alerts,
	})
}

// EmployeeHistory handles GET /v1/employees/:employee_id/history
func (h *ReportHandler) EmployeeHistory(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	records, err := h.services.Report.EmployeeHistory(c.Request.Context(), c.Param("employee_id"), days)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load employee history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employee history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}
