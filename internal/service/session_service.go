package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/metrics"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/route"
)

const defaultSessionTTL = 24 * time.Hour

// Modal names an asynchronous request surface of a session
type Modal string

const (
	ModalSummary  Modal = "summary"
	ModalBriefing Modal = "briefing"
)

// RequestToken identifies one in-flight request of a modal
type RequestToken struct {
	SessionID string
	Modal     Modal
	Subject   string
	Seq       uint64
}

type guard struct {
	seq     uint64
	subject string
	pending bool
}

// session is one reader's application state. The route controller owns the
// view; the secondary filter and the request guards are guarded by mu.
type session struct {
	id    string
	route *route.Controller

	mu       sync.Mutex
	filter   models.Category
	guards   map[Modal]guard
	seq      uint64
	lastSeen time.Time
}

// onViewChange runs under the controller lock
func (s *session) onViewChange(prev, next models.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next.Kind != models.ViewArticle && next.Kind != models.ViewAuthor {
		s.filter = models.CategoryAll
	}
	// Leaving a view closes its modals; late results must be discarded.
	clear(s.guards)
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// sessionService is the concrete implementation of SessionService
type sessionService struct {
	catalog       *Catalog
	loadingWindow time.Duration
	ttl           time.Duration
	now           func() time.Time
	log           zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*session

	sweepMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

func newSessionService(catalog *Catalog, cfg *config.Config, log zerolog.Logger) *sessionService {
	ttl := cfg.Server.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionService{
		catalog:       catalog,
		loadingWindow: cfg.Feed.LoadingWindow,
		ttl:           ttl,
		now:           time.Now,
		log:           log.With().Str("service", "sessions").Logger(),
		sessions:      make(map[string]*session),
	}
}

// get returns the session, creating it on first use. The lookup and the touch
// happen under s.mu so Sweep never removes a session a caller just obtained.
func (s *sessionService) get(id string) *session {
	now := s.now()

	s.mu.RLock()
	sess, ok := s.sessions[id]
	if ok {
		sess.touch(now)
	}
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.touch(now)
		return sess
	}

	sess = &session{
		id:       id,
		filter:   models.CategoryAll,
		guards:   make(map[Modal]guard),
		lastSeen: now,
	}
	sess.route = route.NewController(s.catalog.Articles, s.catalog.Authors, route.Options{
		LoadingWindow: s.loadingWindow,
		OnViewChange:  sess.onViewChange,
	})
	s.sessions[id] = sess

	s.log.Debug().Str("session_id", id).Msg("Session created")
	return sess
}

// Navigate processes a fragment-changed event for the session
func (s *sessionService) Navigate(sessionID, fragment string) models.ViewSnapshot {
	snap := s.get(sessionID).route.HandleFragmentChange(fragment)
	metrics.RecordResolution(string(snap.View.Kind), snap.Corrected)
	if snap.Corrected {
		s.log.Debug().Str("session_id", sessionID).Str("fragment", fragment).Msg("Unknown article, rewrote fragment to home")
	}
	return snap
}

func (s *sessionService) View(sessionID string) models.ViewSnapshot {
	return s.get(sessionID).route.Snapshot()
}

func (s *sessionService) Filter(sessionID string) models.Category {
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.filter
}

// SetFilter sets the secondary feed filter; empty or "all" clears it
func (s *sessionService) SetFilter(sessionID string, category models.Category) (models.Category, error) {
	if category == "" {
		category = models.CategoryAll
	}
	if !category.Known() {
		return "", ErrInvalidCategory
	}
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.filter = category
	return category, nil
}

// Begin opens a request for subject on modal. A pending request for the same
// subject makes it fail with gateway.ErrBusy; any other pending request of the
// modal is superseded.
func (s *sessionService) Begin(sessionID string, modal Modal, subject string) (RequestToken, error) {
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if g, ok := sess.guards[modal]; ok && g.pending && g.subject == subject {
		return RequestToken{}, gateway.ErrBusy
	}
	sess.seq++
	sess.guards[modal] = guard{seq: sess.seq, subject: subject, pending: true}

	return RequestToken{SessionID: sessionID, Modal: modal, Subject: subject, Seq: sess.seq}, nil
}

// Complete ends the request and reports whether its result is still wanted
func (s *sessionService) Complete(token RequestToken) bool {
	s.mu.RLock()
	sess, ok := s.sessions[token.SessionID]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	g, ok := sess.guards[token.Modal]
	if !ok || g.seq != token.Seq || !g.pending {
		return false
	}
	g.pending = false
	sess.guards[token.Modal] = g
	return true
}

func (s *sessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
func (s *sessionService) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.route.Close()
	}
	if len(expired) > 0 {
		s.log.Info().Int("expired", len(expired)).Msg("Swept idle sessions")
	}
	return len(expired)
}

// StartSweeper runs Sweep periodically until StopSweeper or ctx is done
func (s *sessionService) StartSweeper(ctx context.Context) {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()
	if s.running {
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)

	interval := max(s.ttl/4, time.Minute)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
	s.log.Info().Dur("interval", interval).Msg("Session sweeper started")
}

// StopSweeper stops the sweeper and closes every session's controller
func (s *sessionService) StopSweeper() {
	s.sweepMu.Lock()
	if s.running {
		s.cancel()
		s.wg.Wait()
		s.running = false
	}
	s.sweepMu.Unlock()

	s.mu.RLock()
	for _, sess := range s.sessions {
		sess.route.Close()
	}
	s.mu.RUnlock()
	s.log.Info().Msg("Session sweeper stopped")
}
