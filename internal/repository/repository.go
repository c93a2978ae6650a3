package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/database"
	"github.com/nashra-news-api/internal/models"
)

// Persistent key space
const (
	KeyTheme          = "nashra_theme"
	KeyLikedArticles  = "nashra_liked_articles"
	KeyFontSize       = "nashra_article_font_size"
	keyCommentsPrefix = "nashra_comments_"
)

// CommentsKey is the storage key of an article's comment list
func CommentsKey(articleID string) string {
	return keyCommentsPrefix + articleID
}

// SessionKey scopes a preference key to one session
func SessionKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}

// KVStore is the persistent key-value space. Writes are last-write-wins per key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository persists the newest-first comment list of each article
type CommentRepository interface {
	Load(ctx context.Context, articleID string) ([]models.Comment, error)
	Save(ctx context.Context, articleID string, comments []models.Comment) error
}

// PreferenceRepository persists per-session reader preferences. The bool
// results report whether a value was stored.
type PreferenceRepository interface {
	Theme(ctx context.Context, sessionID string) (models.Theme, bool, error)
	SetTheme(ctx context.Context, sessionID string, theme models.Theme) error
	LikedArticles(ctx context.Context, sessionID string) ([]string, error)
	SetLikedArticles(ctx context.Context, sessionID string, ids []string) error
	FontSize(ctx context.Context, sessionID string) (int, bool, error)
	SetFontSize(ctx context.Context, sessionID string, px int) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	KV         KVStore
	Comment    CommentRepository
	Preference PreferenceRepository
}

// New creates all repositories on top of the given key-value store
func New(kv KVStore, log zerolog.Logger) *Repositories {
	return &Repositories{
		KV:         kv,
		Comment:    NewCommentRepo(kv, log),
		Preference: NewPreferenceRepo(kv, log),
	}
}

// NewKV returns the SQL-backed store when db is set, else an in-memory one
func NewKV(db *database.DB) KVStore {
	if db == nil {
		return NewMemoryKV()
	}
	return NewSQLKV(db)
}
