package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/service"
)

// SyncHandler exposes the reconciler to administrators
type SyncHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(services *service.Services, log zerolog.Logger) *SyncHandler {
	return &SyncHandler{
		services: services,
		log:      log.With().Str("handler", "sync").Logger(),
	}
}

// Run handles POST /v1/sync. The reconciler reports its outcome in the
// result body either way; a failed run maps to a 500.
func (h *SyncHandler) Run(c *gin.Context) {
	result := h.services.Sync.Run(c.Request.Context())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}
