// Package articles holds the canonical ordered article list.
//
// Content fields are immutable after seeding; the only mutation is Move,
// which swaps an article with its neighbour. Every read returns a copy so
// callers can derive view slices without holding the lock.
package articles

import (
	"strings"
	"sync"

	"github.com/nashra-news-api/internal/models"
)

// Direction is a reorder direction
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Store is the in-memory ordered article list
type Store struct {
	mu       sync.RWMutex
	articles []models.Article
	version  uint64
}

// NewStore creates a store seeded with articles in the given order
func NewStore(seed []models.Article) *Store {
	list := make([]models.Article, len(seed))
	copy(list, seed)
	return &Store{articles: list}
}

// List returns the current order
func (s *Store) List() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Version increases by one on every effective reorder
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Count returns the number of articles
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// FindByID returns the article with id
func (s *Store) FindByID(id string) (models.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.articles[i], true
	}
	return models.Article{}, false
}

// FindByAuthor returns the articles whose author equals name exactly, in list order
func (s *Store) FindByAuthor(name string) []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Article, 0)
	for _, a := range s.articles {
		if a.Author == name {
			out = append(out, a)
		}
	}
	return out
}

// Move swaps the article with id and its neighbour in direction and returns
// the resulting order. Unknown ids, unknown directions and moves past either
// end leave the order unchanged.
func (s *Store) Move(id string, dir Direction) []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot()
	}

	var j int
	switch dir {
	case Up:
		j = i - 1
	case Down:
		j = i + 1
	default:
		return s.snapshot()
	}
	if j < 0 || j >= len(s.articles) {
		return s.snapshot()
	}

	s.articles[i], s.articles[j] = s.articles[j], s.articles[i]
	s.version++
	return s.snapshot()
}

// Search matches query case-insensitively against title and excerpt.
// A blank query matches nothing.
func (s *Store) Search(query string) []models.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Article, 0)
	if q == "" {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Excerpt), q) {
			out = append(out, a)
		}
	}
	return out
}

// Breaking returns the articles flagged as breaking news, in list order
func (s *Store) Breaking() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Article, 0)
	for _, a := range s.articles {
		if a.IsBreaking {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) indexOf(id string) int {
	for i, a := range s.articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []models.Article {
	out := make([]models.Article, len(s.articles))
	copy(out, s.articles)
	return out
}
