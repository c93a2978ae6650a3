package service

import (
	"context"
	"time"

	"github.com/nashra-news-api/internal/repository"
)

// Stats are the counts served by the stats endpoint
type Stats struct {
	Articles  int       `json:"articles"`
	Authors   int       `json:"authors"`
	Sessions  int       `json:"sessions"`
	KVEntries int       `json:"kvEntries"`
	Timestamp time.Time `json:"timestamp"`
}

type statsService struct {
	kv       repository.KVStore
	catalog  *Catalog
	sessions SessionService
}

func newStatsService(kv repository.KVStore, catalog *Catalog, sessions SessionService) *statsService {
	return &statsService{kv: kv, catalog: catalog, sessions: sessions}
}

func (s *statsService) Stats(ctx context.Context) (*Stats, error) {
	entries, err := s.kv.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Articles:  s.catalog.Articles.Count(),
		Authors:   s.catalog.Authors.Count(),
		Sessions:  s.sessions.Count(),
		KVEntries: entries,
		Timestamp: time.Now().UTC(),
	}, nil
}
