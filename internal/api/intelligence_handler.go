package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/service"
)

// IntelligenceHandler handles generated content endpoints
type IntelligenceHandler struct {
	services *service.Services
	timeout  time.Duration
	log      zerolog.Logger
}

// NewIntelligenceHandler creates a new IntelligenceHandler
func NewIntelligenceHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{
		services: services,
		timeout:  cfg.AI.RequestTimeout,
		log:      log.With().Str("handler", "intelligence").Logger(),
	}
}

// Summarize handles POST /v1/articles/:id/summary
func (h *IntelligenceHandler) Summarize(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	summary, err := h.services.Intelligence.Summarize(ctx, sessionID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Briefing handles POST /v1/analyst/briefing
func (h *IntelligenceHandler) Briefing(c *gin.Context) {
	var req models.BriefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	briefing, err := h.services.Intelligence.Briefing(ctx, sessionID(c), req.Topic)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"briefing": briefing,
		"shareUrl": h.services.Intelligence.AnalystShareURL(req.Topic),
	})
}

// GetMarket handles GET /v1/market
func (h *IntelligenceHandler) GetMarket(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Market.Snapshot())
}

// context bounds a generation request, including time spent waiting on the
// rate limiter
func (h *IntelligenceHandler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
