package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/service"
)

// PreferenceHandler handles reader preference endpoints
type PreferenceHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(services *service.Services, log zerolog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		services: services,
		log:      log.With().Str("handler", "preference").Logger(),
	}
}

// FontSizeRequest adjusts the reader font size
type FontSizeRequest struct {
	Action models.FontSizeAction `json:"action"`
}

// GetPreferences handles GET /v1/preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	h.respond(c)(h.services.Preferences.Get(c.Request.Context(), sessionID(c)))
}

// ToggleTheme handles POST /v1/preferences/theme/toggle
func (h *PreferenceHandler) ToggleTheme(c *gin.Context) {
	h.respond(c)(h.services.Preferences.ToggleTheme(c.Request.Context(), sessionID(c)))
}

// ToggleLike handles POST /v1/preferences/likes/:id/toggle
func (h *PreferenceHandler) ToggleLike(c *gin.Context) {
	h.respond(c)(h.services.Preferences.ToggleLike(c.Request.Context(), sessionID(c), c.Param("id")))
}

// AdjustFontSize handles POST /v1/preferences/font-size
func (h *PreferenceHandler) AdjustFontSize(c *gin.Context) {
	var req FontSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.respond(c)(h.services.Preferences.AdjustFontSize(c.Request.Context(), sessionID(c), req.Action))
}

func (h *PreferenceHandler) respond(c *gin.Context) func(*models.Preferences, error) {
	return func(prefs *models.Preferences, err error) {
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}
