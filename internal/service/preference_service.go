package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/repository"
)

// preferenceService is the concrete implementation of PreferenceService
type preferenceService struct {
	repo         repository.PreferenceRepository
	articles     *articles.Store
	defaultTheme models.Theme
	locks        *keyedMutex
	log          zerolog.Logger
}

func newPreferenceService(repo repository.PreferenceRepository, store *articles.Store, cfg *config.Config, log zerolog.Logger) *preferenceService {
	theme := models.Theme(cfg.Preferences.DefaultTheme)
	if !theme.Valid() {
		theme = models.ThemeLight
	}
	return &preferenceService{
		repo:         repo,
		articles:     store,
		defaultTheme: theme,
		locks:        newKeyedMutex(),
		log:          log.With().Str("service", "preferences").Logger(),
	}
}

// Get returns stored preferences with defaults for anything unset
func (s *preferenceService) Get(ctx context.Context, sessionID string) (*models.Preferences, error) {
	theme, ok, err := s.repo.Theme(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		theme = s.defaultTheme
	}

	liked, err := s.repo.LikedArticles(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load liked articles: %w", err)
	}

	px, ok, err := s.repo.FontSize(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load font size: %w", err)
	}
	if !ok {
		px = models.DefaultFontSizePx
	}

	return &models.Preferences{
		Theme:             theme,
		LikedArticleIDs:   liked,
		ArticleFontSizePx: ClampFontSize(px),
	}, nil
}

// ToggleTheme is the only writer of the theme
func (s *preferenceService) ToggleTheme(ctx context.Context, sessionID string) (*models.Preferences, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	prefs, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	prefs.Theme = ToggledTheme(prefs.Theme)
	if err := s.repo.SetTheme(ctx, sessionID, prefs.Theme); err != nil {
		return nil, fmt.Errorf("save theme: %w", err)
	}

	s.log.Debug().Str("session_id", sessionID).Str("theme", string(prefs.Theme)).Msg("Theme toggled")
	return prefs, nil
}

// ToggleLike flips membership of articleID in the liked set
func (s *preferenceService) ToggleLike(ctx context.Context, sessionID, articleID string) (*models.Preferences, error) {
	if _, ok := s.articles.FindByID(articleID); !ok {
		return nil, ErrArticleNotFound
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	prefs, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	prefs.LikedArticleIDs = ToggleMembership(prefs.LikedArticleIDs, articleID)
	if err := s.repo.SetLikedArticles(ctx, sessionID, prefs.LikedArticleIDs); err != nil {
		return nil, fmt.Errorf("save liked articles: %w", err)
	}
	return prefs, nil
}

// AdjustFontSize steps the reader font size by 2px within [14,32] or resets it
func (s *preferenceService) AdjustFontSize(ctx context.Context, sessionID string, action models.FontSizeAction) (*models.Preferences, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	prefs, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next, err := NextFontSize(prefs.ArticleFontSizePx, action)
	if err != nil {
		return nil, err
	}
	prefs.ArticleFontSizePx = next
	if err := s.repo.SetFontSize(ctx, sessionID, next); err != nil {
		return nil, fmt.Errorf("save font size: %w", err)
	}
	return prefs, nil
}

// ToggledTheme returns the opposite theme
func ToggledTheme(t models.Theme) models.Theme {
	if t == models.ThemeDark {
		return models.ThemeLight
	}
	return models.ThemeDark
}

// ToggleMembership removes id from ids if present, else appends it
func ToggleMembership(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// NextFontSize applies action to current
func NextFontSize(current int, action models.FontSizeAction) (int, error) {
	switch action {
	case models.FontSizeIncrease:
		return ClampFontSize(current + models.FontSizeStepPx), nil
	case models.FontSizeDecrease:
		return ClampFontSize(current - models.FontSizeStepPx), nil
	case models.FontSizeReset:
		return models.DefaultFontSizePx, nil
	default:
		return current, ErrInvalidFontSizeAction
	}
}

// ClampFontSize bounds px to the supported range
func ClampFontSize(px int) int {
	return max(models.MinFontSizePx, min(models.MaxFontSizePx, px))
}
