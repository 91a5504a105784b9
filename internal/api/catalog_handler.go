package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/service"
)

// CatalogHandler serves master data read from the workbook
type CatalogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(services *service.Services, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		services: services,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// ListEmployees handles GET /v1/employees
func (h *CatalogHandler) ListEmployees(c *gin.Context) {
	employees, err := h.services.Catalog.Employees(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load employees")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// ListProjects handles GET /v1/projects
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	projects, err := h.services.Catalog.Projects(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// ListTasks handles GET /v1/tasks
func (h *CatalogHandler) ListTasks(c *gin.Context) {
	tasks, err := h.services.Catalog.Tasks(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListNonProductiveTasks handles GET /v1/non-productive-tasks
func (h *CatalogHandler) ListNonProductiveTasks(c *gin.Context) {
	tasks, err := h.services.Catalog.NonProductiveTasks(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load non-productive tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load non-productive tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}
