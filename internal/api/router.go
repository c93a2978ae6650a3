package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/metrics"
	"github.com/nashra-news-api/internal/service"
)

const (
	// SessionHeader carries the reader session id in both directions
	SessionHeader = "X-Session-ID"

	sessionKey = "session_id"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())

	// Handlers
	viewHandler := NewViewHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	preferenceHandler := NewPreferenceHandler(services, log)
	intelligenceHandler := NewIntelligenceHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/v1")
	v1.Use(sessionMiddleware())
	{
		v1.GET("/stats", statsHandler(services))
		v1.GET("/nav", viewHandler.GetNav)

		// Route state
		v1.POST("/navigate", viewHandler.Navigate)
		v1.GET("/view", viewHandler.GetView)
		v1.GET("/feed", viewHandler.GetFeed)
		v1.PUT("/feed/filter", viewHandler.SetFilter)

		// Articles
		v1.GET("/articles", articleHandler.ListArticles)
		v1.GET("/search", articleHandler.Search)
		v1.GET("/breaking", articleHandler.Breaking)
		v1.GET("/authors/:name", articleHandler.GetAuthor)

		article := v1.Group("/articles/:id")
		{
			article.GET("", articleHandler.GetArticle)
			article.POST("/move", articleHandler.MoveArticle)
			article.GET("/related", articleHandler.GetRelated)
			article.POST("/summary", intelligenceHandler.Summarize)

			article.GET("/comments", commentHandler.ListComments)
			article.POST("/comments", commentHandler.AddComment)
			article.DELETE("/comments/:commentId", commentHandler.DeleteComment)
		}

		// Preferences
		prefs := v1.Group("/preferences")
		{
			prefs.GET("", preferenceHandler.GetPreferences)
			prefs.POST("/theme/toggle", preferenceHandler.ToggleTheme)
			prefs.POST("/likes/:id/toggle", preferenceHandler.ToggleLike)
			prefs.POST("/font-size", preferenceHandler.AdjustFontSize)
		}

		// Generated content
		v1.POST("/analyst/briefing", intelligenceHandler.Briefing)
		v1.GET("/market", intelligenceHandler.GetMarket)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "nashra-news-api",
	})
}

// statsHandler returns catalogue and storage counts
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := services.Stats.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// sessionMiddleware resolves the reader session, issuing a new id when the
// header is missing or malformed
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// sessionID returns the id set by sessionMiddleware
func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
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
			Str("session_id", sessionID(c)).
			Msg("Request completed")
	}
}

// metricsMiddleware counts requests by route template
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, route, c.Writer.Status())
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", SessionHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
