package service

import (
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/content"
	"github.com/nashra-news-api/internal/feed"
	"github.com/nashra-news-api/internal/models"
)

const (
	relatedInCategory = 3
	relatedSampled    = 2
)

// ArticleDetail is the article page payload
type ArticleDetail struct {
	Article     models.Article    `json:"article"`
	BodyHTML    string            `json:"bodyHtml"`
	ReadingTime string            `json:"readingTime"`
	Author      models.AuthorInfo `json:"author"`
	AvatarURL   string            `json:"avatarUrl"`
	Share       models.ShareLinks `json:"share"`
	Related     []models.Article  `json:"related"`
}

// RelatedArticles are the suggestions attached to an article. Suggested is
// randomly sampled on every call.
type RelatedArticles struct {
	SameCategory []models.Article `json:"sameCategory"`
	Suggested    []models.Article `json:"suggested"`
}

// AuthorProfile is an author page
type AuthorProfile struct {
	Author    models.AuthorInfo `json:"author"`
	AvatarURL string            `json:"avatarUrl"`
	Articles  []models.Article  `json:"articles"`
}

// CategoryPill is a secondary filter option
type CategoryPill struct {
	Value models.Category `json:"value"`
	Label string          `json:"label"`
}

// NavMetadata is the header navigation and filter pills
type NavMetadata struct {
	Links           []models.NavLink `json:"links"`
	Categories      []CategoryPill   `json:"categories"`
	SuggestedTopics []string         `json:"suggestedTopics"`
}

// articleService is the concrete implementation of ArticleService
type articleService struct {
	catalog  *Catalog
	renderer *content.Renderer
	origin   string
	feedOpts feed.Options
	featured int
	log      zerolog.Logger
}

func newArticleService(catalog *Catalog, cfg *config.Config, log zerolog.Logger) *articleService {
	return &articleService{
		catalog:  catalog,
		renderer: content.NewRenderer(),
		origin:   cfg.Server.PublicOrigin,
		feedOpts: feed.Options{MostPopular: cfg.Feed.MostPopularSize},
		featured: cfg.Feed.FeaturedStories,
		log:      log.With().Str("service", "articles").Logger(),
	}
}

func (s *articleService) List() []models.Article {
	return s.catalog.Articles.List()
}

func (s *articleService) Count() int {
	return s.catalog.Articles.Count()
}

// Detail returns the article page, or nil when the id is unknown
func (s *articleService) Detail(id string) (*ArticleDetail, error) {
	article, ok := s.catalog.Articles.FindByID(id)
	if !ok {
		return nil, nil
	}

	body, err := s.renderer.RenderHTML(article.Content)
	if err != nil {
		return nil, err
	}
	author := s.catalog.Authors.Lookup(article.Author)

	return &ArticleDetail{
		Article:     article,
		BodyHTML:    body,
		ReadingTime: content.ReadingTime(article),
		Author:      author,
		AvatarURL:   author.AvatarURL(),
		Share:       ShareLinksFor(s.origin, article),
		Related:     articles.RelatedInCategory(s.catalog.Articles.List(), article, relatedInCategory),
	}, nil
}

// Related returns nil when the id is unknown
func (s *articleService) Related(id string) (*RelatedArticles, error) {
	article, ok := s.catalog.Articles.FindByID(id)
	if !ok {
		return nil, nil
	}
	list := s.catalog.Articles.List()
	return &RelatedArticles{
		SameCategory: articles.RelatedInCategory(list, article, relatedInCategory),
		Suggested:    articles.SampleRelated(list, article, relatedSampled, nil),
	}, nil
}

// Move swaps id with its neighbour. Unknown ids and boundary moves leave the
// order unchanged.
func (s *articleService) Move(id string, dir articles.Direction) ([]models.Article, error) {
	if dir != articles.Up && dir != articles.Down {
		return nil, ErrInvalidDirection
	}
	before := s.catalog.Articles.Version()
	list := s.catalog.Articles.Move(id, dir)
	if s.catalog.Articles.Version() != before {
		s.log.Info().Str("article_id", id).Str("direction", string(dir)).Msg("Article moved")
	}
	return list, nil
}

func (s *articleService) Search(query string) []models.Article {
	return s.catalog.Articles.Search(query)
}

func (s *articleService) Breaking() []models.Article {
	return s.catalog.Articles.Breaking()
}

func (s *articleService) FeaturedStories() []models.Article {
	return feed.FeaturedStories(s.catalog.Articles.List(), s.featured)
}

// AuthorProfile resolves the author, synthesizing a placeholder for unknown names
func (s *articleService) AuthorProfile(name string) *AuthorProfile {
	author := s.catalog.Authors.Lookup(name)
	return &AuthorProfile{
		Author:    author,
		AvatarURL: author.AvatarURL(),
		Articles:  s.catalog.Articles.FindByAuthor(name),
	}
}

// Feed composes the listing page from the current order
func (s *articleService) Feed(view models.ViewState, filter models.Category) feed.Feed {
	return feed.Compose(s.catalog.Articles.List(), view, filter, s.feedOpts)
}

func (s *articleService) Nav() *NavMetadata {
	pills := make([]CategoryPill, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		pills = append(pills, CategoryPill{Value: c, Label: c.Label()})
	}
	return &NavMetadata{
		Links:           s.catalog.NavLinks,
		Categories:      pills,
		SuggestedTopics: s.catalog.SuggestedTopics,
	}
}
