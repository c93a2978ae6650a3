package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/service"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /v1/articles/:id/comments?page=
func (h *CommentHandler) ListComments(c *gin.Context) {
	page, err := h.services.Comments.List(c.Request.Context(), c.Param("id"), pageParam(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// AddComment handles POST /v1/articles/:id/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Comments.Add(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /v1/articles/:id/comments/:commentId?page=
// and answers with the clamped page the client should show next
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	page, err := h.services.Comments.Remove(c.Request.Context(), c.Param("id"), c.Param("commentId"), pageParam(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// pageParam reads ?page=, defaulting to 1
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
