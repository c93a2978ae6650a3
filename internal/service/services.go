package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/authors"
	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/feed"
	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/market"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/repository"
	"github.com/nashra-news-api/internal/seed"
)

var (
	// ErrArticleNotFound is returned for operations on an unknown article id
	ErrArticleNotFound = errors.New("article not found")

	// ErrEmptyComment is returned when the trimmed comment text is blank
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrCommentTooLong is returned when a comment exceeds its length limits
	ErrCommentTooLong = errors.New("comment exceeds length limits")

	// ErrInvalidDirection is returned for a move direction other than up or down
	ErrInvalidDirection = errors.New("direction must be up or down")

	// ErrInvalidFontSizeAction is returned for an unknown font size action
	ErrInvalidFontSizeAction = errors.New("action must be increase, decrease or reset")

	// ErrInvalidCategory is returned for a filter outside the category set
	ErrInvalidCategory = errors.New("unknown category")

	// ErrEmptyTopic is returned when a briefing topic is blank
	ErrEmptyTopic = errors.New("topic is required")

	// ErrStale is returned when a generated result arrives after its modal
	// was closed or superseded
	ErrStale = errors.New("result is no longer relevant")
)

// ArticleService defines the read model of the catalogue
type ArticleService interface {
	List() []models.Article
	Count() int
	Detail(id string) (*ArticleDetail, error)
	Related(id string) (*RelatedArticles, error)
	Move(id string, dir articles.Direction) ([]models.Article, error)
	Search(query string) []models.Article
	Breaking() []models.Article
	FeaturedStories() []models.Article
	AuthorProfile(name string) *AuthorProfile
	Feed(view models.ViewState, filter models.Category) feed.Feed
	Nav() *NavMetadata
}

// CommentService defines comment operations for an article
type CommentService interface {
	List(ctx context.Context, articleID string, page int) (*models.CommentPage, error)
	Add(ctx context.Context, articleID string, req *models.CommentRequest) (*models.Comment, error)
	Remove(ctx context.Context, articleID, commentID string, currentPage int) (*models.CommentPage, error)
}

// PreferenceService defines per-session preference updates. Each preference
// has exactly one mutating operation.
type PreferenceService interface {
	Get(ctx context.Context, sessionID string) (*models.Preferences, error)
	ToggleTheme(ctx context.Context, sessionID string) (*models.Preferences, error)
	ToggleLike(ctx context.Context, sessionID, articleID string) (*models.Preferences, error)
	AdjustFontSize(ctx context.Context, sessionID string, action models.FontSizeAction) (*models.Preferences, error)
}

// SessionService defines the per-session application state
type SessionService interface {
	Navigate(sessionID, fragment string) models.ViewSnapshot
	View(sessionID string) models.ViewSnapshot
	Filter(sessionID string) models.Category
	SetFilter(sessionID string, category models.Category) (models.Category, error)
	Begin(sessionID string, modal Modal, subject string) (RequestToken, error)
	Complete(token RequestToken) bool
	Count() int
	Sweep() int
	StartSweeper(ctx context.Context)
	StopSweeper()
}

// IntelligenceService defines the generated summaries and briefings
type IntelligenceService interface {
	Summarize(ctx context.Context, sessionID, articleID string) (*models.SummaryResponse, error)
	Briefing(ctx context.Context, sessionID, topic string) (*models.BriefingResponse, error)
	AnalystShareURL(topic string) string
}

// MarketService exposes the latest ticker quotes
type MarketService interface {
	Snapshot() market.Snapshot
}

// StatsService reports catalogue and storage counts
type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}

// Services holds all service interfaces
type Services struct {
	Articles     ArticleService
	Comments     CommentService
	Preferences  PreferenceService
	Sessions     SessionService
	Intelligence IntelligenceService
	Market       MarketService
	Stats        StatsService
}

// Catalog is the seeded, process-wide content
type Catalog struct {
	Articles        *articles.Store
	Authors         *authors.Directory
	NavLinks        []models.NavLink
	SuggestedTopics []string
}

// NewCatalog builds the catalogue from seed data
func NewCatalog(data *seed.Data) *Catalog {
	return &Catalog{
		Articles:        articles.NewStore(data.Articles),
		Authors:         authors.NewDirectory(data.Authors),
		NavLinks:        data.NavLinks,
		SuggestedTopics: data.SuggestedTopics,
	}
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	catalog *Catalog,
	summarizer gateway.Summarizer,
	ticker MarketService,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	sessionSvc := newSessionService(catalog, cfg, log)
	articleSvc := newArticleService(catalog, cfg, log)

	return &Services{
		Articles:     articleSvc,
		Comments:     newCommentService(repos.Comment, catalog.Articles, log),
		Preferences:  newPreferenceService(repos.Preference, catalog.Articles, cfg, log),
		Sessions:     sessionSvc,
		Intelligence: newIntelligenceService(summarizer, sessionSvc, catalog.Articles, cfg, log),
		Market:       ticker,
		Stats:        newStatsService(repos.KV, catalog, sessionSvc),
	}
}
