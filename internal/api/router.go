package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/config"
	"github.com/timesheet-sync-api/internal/repository"
	"github.com/timesheet-sync-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	timerHandler := NewTimerHandler(services, log)
	syncHandler := NewSyncHandler(services, log)
	catalogHandler := NewCatalogHandler(services, log)
	reportHandler := NewReportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(repos))

	// API v1
	v1 := router.Group("/v1")
	{
		// Master data (read-only, backed by the workbook)
		v1.GET("/employees", catalogHandler.ListEmployees)
		v1.GET("/projects", catalogHandler.ListProjects)
		v1.GET("/tasks", catalogHandler.ListTasks)
		v1.GET("/non-productive-tasks", catalogHandler.ListNonProductiveTasks)

		// Timers
		timers := v1.Group("/timers")
		{
			timers.POST("/start", timerHandler.Start)
			timers.POST("/stop", timerHandler.Stop)
			timers.GET("", timerHandler.ListActive)
			timers.GET("/:employee_id", timerHandler.GetActive)
		}

		// Reconciliation
		v1.POST("/sync", syncHandler.Run)

		// Reports
		v1.GET("/dashboard", reportHandler.Dashboard)
		v1.GET("/employees/:employee_id/history", reportHandler.EmployeeHistory)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "timesheet-sync-api",
	})
}

// metricsHandler returns record and timer counts
func metricsHandler(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		recordCount, _ := repos.Record.Count(ctx)
		timers, _ := repos.Timer.List(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"time_records":  recordCount,
				"active_timers": len(timers),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
