package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/models"
	"github.com/timesheet-sync-api/internal/service"
)

// TimerHandler handles timer lifecycle requests
type TimerHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTimerHandler creates a new timer handler
func NewTimerHandler(services *service.Services, log zerolog.Logger) *TimerHandler {
	return &TimerHandler{
		services: services,
		log:      log.With().Str("handler", "timer").Logger(),
	}
}

// Start handles POST /v1/timers/start
func (h *TimerHandler) Start(c *gin.Context) {
	var req models.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer, err := h.services.Timer.Start(c.Request.Context(), &req)
	if err != nil {
		h.writeTimerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, timer)
}

// Stop handles POST /v1/timers/stop
func (h *TimerHandler) Stop(c *gin.Context) {
	var req models.StopTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.services.Timer.Stop(c.Request.Context(), req.EmployeeID)
	if err != nil {
		h.writeTimerError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetActive handles GET /v1/timers/:employee_id
func (h *TimerHandler) GetActive(c *gin.Context) {
	timer, err := h.services.Timer.GetActive(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to look up active timer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up active timer"})
		return
	}
	if timer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active timer"})
		return
	}

	c.JSON(http.StatusOK, timer)
}

// ListActive handles GET /v1/timers
func (h *TimerHandler) ListActive(c *gin.Context) {
	timers, err := h.services.Timer.ListActive(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list active timers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list active timers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"timers": timers, "count": len(timers)})
}

func (h *TimerHandler) writeTimerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoActiveTimer):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTimerAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMissingTask), errors.Is(err, service.ErrMissingProject):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("Timer operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "timer operation failed"})
	}
}
