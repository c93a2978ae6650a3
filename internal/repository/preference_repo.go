package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/models"
)

// preferenceRepo stores each preference under its own session-scoped key
type preferenceRepo struct {
	kv  KVStore
	log zerolog.Logger
}

// NewPreferenceRepo creates a new preference repository
func NewPreferenceRepo(kv KVStore, log zerolog.Logger) PreferenceRepository {
	return &preferenceRepo{
		kv:  kv,
		log: log.With().Str("component", "preference_repo").Logger(),
	}
}

func (r *preferenceRepo) Theme(ctx context.Context, sessionID string) (models.Theme, bool, error) {
	raw, ok, err := r.kv.Get(ctx, SessionKey(sessionID, KeyTheme))
	if err != nil || !ok {
		return "", false, err
	}
	theme := models.Theme(raw)
	if !theme.Valid() {
		r.log.Warn().Str("session_id", sessionID).Str("value", raw).Msg("Ignoring unknown stored theme")
		return "", false, nil
	}
	return theme, true, nil
}

func (r *preferenceRepo) SetTheme(ctx context.Context, sessionID string, theme models.Theme) error {
	return r.kv.Set(ctx, SessionKey(sessionID, KeyTheme), string(theme))
}

// LikedArticles returns the stored set in insertion order
func (r *preferenceRepo) LikedArticles(ctx context.Context, sessionID string) ([]string, error) {
	key := SessionKey(sessionID, KeyLikedArticles)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Discarding unreadable liked articles")
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *preferenceRepo) SetLikedArticles(ctx context.Context, sessionID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode liked articles: %w", err)
	}
	return r.kv.Set(ctx, SessionKey(sessionID, KeyLikedArticles), string(raw))
}

func (r *preferenceRepo) FontSize(ctx context.Context, sessionID string) (int, bool, error) {
	key := SessionKey(sessionID, KeyFontSize)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	px, err := strconv.Atoi(raw)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Ignoring unreadable font size")
		return 0, false, nil
	}
	return px, true, nil
}

func (r *preferenceRepo) SetFontSize(ctx context.Context, sessionID string, px int) error {
	return r.kv.Set(ctx, SessionKey(sessionID, KeyFontSize), strconv.Itoa(px))
}
