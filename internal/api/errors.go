package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/service"
)

// writeError maps service and gateway errors to responses
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	var genErr *gateway.GenerationError
	var commentErr *service.CommentValidationError

	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	case errors.As(err, &commentErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": commentErr.Error(), "details": commentErr.Errors})
	case errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidFontSizeAction),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrEmptyTopic):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gateway.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStale):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "stale": true})
	case errors.As(err, &genErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": genErr.Message, "retryable": true})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
