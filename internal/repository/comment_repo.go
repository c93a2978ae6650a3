package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	kv  KVStore
	log zerolog.Logger
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(kv KVStore, log zerolog.Logger) CommentRepository {
	return &commentRepo{
		kv:  kv,
		log: log.With().Str("component", "comment_repo").Logger(),
	}
}

// Load returns the newest-first list. Nothing stored or an unreadable value
// yields an empty list; the latter is logged.
func (r *commentRepo) Load(ctx context.Context, articleID string) ([]models.Comment, error) {
	key := CommentsKey(articleID)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []models.Comment{}, nil
	}

	var comments []models.Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Discarding unreadable comment list")
		return []models.Comment{}, nil
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Save replaces the stored list
func (r *commentRepo) Save(ctx context.Context, articleID string, comments []models.Comment) error {
	if comments == nil {
		comments = []models.Comment{}
	}
	raw, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}
	return r.kv.Set(ctx, CommentsKey(articleID), string(raw))
}
