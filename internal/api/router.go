// ABOUTME: Gin router exposing the pipeline tables over HTTP.
// ABOUTME: Wires CORS for local dashboard origins and request logging.
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harperreed/pitchside/internal/logger"
	"github.com/harperreed/pitchside/internal/pipeline"
)

// NewRouter builds the HTTP routes over a pipeline result.
func NewRouter(res *pipeline.Result, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}
	h := NewHandler(res)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORS())

	r.GET("/healthcheck", h.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/seasons", h.Seasons)
		api.GET("/players", h.ListPlayers)
		api.GET("/players/:id", h.GetPlayer)
		api.GET("/players/:id/matches", h.LastMatches)
		api.GET("/players/:id/load", h.Load)
		api.GET("/players/:id/injuries", h.Injuries)
		api.GET("/players/:id/recovery/daily", h.RecoveryDaily)
		api.GET("/players/:id/recovery/heatmap", h.RecoveryHeatmap)
		api.GET("/players/:id/recovery/weekly", h.RecoveryWeekly)
		api.GET("/players/:id/recovery/summary", h.RecoverySummary)
	}
	return r
}

// CORS allows the local dashboard dev servers.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8050",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:8050",
		},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	})
}

// RequestLogger logs one line per request, at warn for 4xx and error for 5xx.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Debug("HTTP request", fields...)
		}
	}
}
