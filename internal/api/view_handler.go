package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/feed"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/service"
)

// ViewHandler handles navigation and feed endpoints
type ViewHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(services *service.Services, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{
		services: services,
		log:      log.With().Str("handler", "view").Logger(),
	}
}

// NavigateRequest is a fragment-changed event
type NavigateRequest struct {
	Fragment string `json:"fragment"`
}

// FilterRequest sets the secondary feed filter
type FilterRequest struct {
	Category models.Category `json:"category"`
}

// ViewResponse is everything a client needs to render its current route
type ViewResponse struct {
	models.ViewSnapshot
	Filter  models.Category        `json:"filter"`
	Feed    *feed.Feed             `json:"feed,omitempty"`
	Article *service.ArticleDetail `json:"article,omitempty"`
	Author  *service.AuthorProfile `json:"authorProfile,omitempty"`
	Share   string                 `json:"analystShareUrl,omitempty"`
}

// GetNav handles GET /v1/nav
func (h *ViewHandler) GetNav(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Articles.Nav())
}

// Navigate handles POST /v1/navigate
func (h *ViewHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sid := sessionID(c)
	snap := h.services.Sessions.Navigate(sid, req.Fragment)
	h.render(c, sid, snap)
}

// GetView handles GET /v1/view
func (h *ViewHandler) GetView(c *gin.Context) {
	sid := sessionID(c)
	h.render(c, sid, h.services.Sessions.View(sid))
}

// GetFeed handles GET /v1/feed
func (h *ViewHandler) GetFeed(c *gin.Context) {
	sid := sessionID(c)
	snap := h.services.Sessions.View(sid)
	f := h.services.Articles.Feed(snap.View, h.services.Sessions.Filter(sid))
	c.JSON(http.StatusOK, f)
}

// SetFilter handles PUT /v1/feed/filter
func (h *ViewHandler) SetFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sid := sessionID(c)
	if _, err := h.services.Sessions.SetFilter(sid, req.Category); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.GetFeed(c)
}

func (h *ViewHandler) render(c *gin.Context, sid string, snap models.ViewSnapshot) {
	resp := ViewResponse{
		ViewSnapshot: snap,
		Filter:       h.services.Sessions.Filter(sid),
	}

	switch snap.View.Kind {
	case models.ViewArticle:
		detail, err := h.services.Articles.Detail(snap.View.ArticleID)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		resp.Article = detail
	case models.ViewAuthor:
		resp.Author = h.services.Articles.AuthorProfile(snap.View.Author.Name)
	case models.ViewAnalyst:
		resp.Share = h.services.Intelligence.AnalystShareURL(snap.View.Topic)
		fallthrough
	default:
		f := h.services.Articles.Feed(snap.View, resp.Filter)
		resp.Feed = &f
	}

	c.JSON(http.StatusOK, resp)
}
