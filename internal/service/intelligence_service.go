package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/models"
)

// intelligenceService runs generation calls behind the session request guards
type intelligenceService struct {
	summarizer gateway.Summarizer
	sessions   SessionService
	articles   *articles.Store
	origin     string
	log        zerolog.Logger
}

func newIntelligenceService(summarizer gateway.Summarizer, sessions SessionService, store *articles.Store, cfg *config.Config, log zerolog.Logger) *intelligenceService {
	return &intelligenceService{
		summarizer: summarizer,
		sessions:   sessions,
		articles:   store,
		origin:     cfg.Server.PublicOrigin,
		log:        log.With().Str("service", "intelligence").Logger(),
	}
}

// Summarize returns the summary of an article. The result is discarded with
// ErrStale when the session closed or superseded the summary meanwhile.
func (s *intelligenceService) Summarize(ctx context.Context, sessionID, articleID string) (*models.SummaryResponse, error) {
	article, ok := s.articles.FindByID(articleID)
	if !ok {
		return nil, ErrArticleNotFound
	}

	token, err := s.sessions.Begin(sessionID, ModalSummary, articleID)
	if err != nil {
		return nil, err
	}

	text, err := s.summarizer.SummarizeArticle(ctx, article.Title, article.Content)
	if !s.sessions.Complete(token) {
		s.log.Debug().Str("session_id", sessionID).Str("article_id", articleID).Msg("Discarding stale summary")
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	return &models.SummaryResponse{ArticleID: articleID, Summary: text}, nil
}

// Briefing returns the analyst briefing for topic under the same guard rules
func (s *intelligenceService) Briefing(ctx context.Context, sessionID, topic string) (*models.BriefingResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	token, err := s.sessions.Begin(sessionID, ModalBriefing, topic)
	if err != nil {
		return nil, err
	}

	briefing, err := s.summarizer.GenerateBriefing(ctx, topic)
	if !s.sessions.Complete(token) {
		s.log.Debug().Str("session_id", sessionID).Str("topic", topic).Msg("Discarding stale briefing")
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	return briefing, nil
}

func (s *intelligenceService) AnalystShareURL(topic string) string {
	return AnalystShareURL(s.origin, strings.TrimSpace(topic))
}
