package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/service"
)

// ArticleHandler handles catalogue endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// MoveRequest reorders an article
type MoveRequest struct {
	Direction articles.Direction `json:"direction"`
}

// ListArticles handles GET /v1/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	list := h.services.Articles.List()
	c.JSON(http.StatusOK, gin.H{
		"articles": list,
		"total":    len(list),
		"featured": h.services.Articles.FeaturedStories(),
	})
}

// GetArticle handles GET /v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	sid := sessionID(c)
	id := c.Param("id")

	detail, err := h.services.Articles.Detail(id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	prefs, err := h.services.Preferences.Get(c.Request.Context(), sid)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	liked := false
	for _, likedID := range prefs.LikedArticleIDs {
		if likedID == id {
			liked = true
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"detail":     detail,
		"liked":      liked,
		"fontSizePx": prefs.ArticleFontSizePx,
	})
}

// MoveArticle handles POST /v1/articles/:id/move
func (h *ArticleHandler) MoveArticle(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	list, err := h.services.Articles.Move(c.Param("id"), req.Direction)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": list})
}

// GetRelated handles GET /v1/articles/:id/related
func (h *ArticleHandler) GetRelated(c *gin.Context) {
	related, err := h.services.Articles.Related(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if related == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, related)
}

// Search handles GET /v1/search?q=
func (h *ArticleHandler) Search(c *gin.Context) {
	query := c.Query("q")
	results := h.services.Articles.Search(query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

// Breaking handles GET /v1/breaking
func (h *ArticleHandler) Breaking(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"articles": h.services.Articles.Breaking()})
}

// GetAuthor handles GET /v1/authors/:name. Unknown names get a placeholder
// profile rather than a 404.
func (h *ArticleHandler) GetAuthor(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Articles.AuthorProfile(c.Param("name")))
}
