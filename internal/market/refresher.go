// Package market keeps the ticker quotes fresh in the background.
package market

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/metrics"
	"github.com/nashra-news-api/internal/models"
)

// DefaultInterval is the refresh period of the ticker
const DefaultInterval = 2 * time.Minute

// Snapshot is the latest set of quotes
type Snapshot struct {
	Items     []models.MarketItem `json:"items"`
	UpdatedAt time.Time           `json:"updatedAt"`
	// Live is false while the quotes are the static fallback
	Live bool `json:"live"`
}

// Refresher polls a MarketSource on a fixed interval. A failed refresh keeps
// the previous snapshot.
type Refresher struct {
	source   gateway.MarketSource
	interval time.Duration
	log      zerolog.Logger

	dataMu   sync.RWMutex
	snapshot Snapshot

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewRefresher creates a refresher whose initial snapshot is fallback.
// A nil source never refreshes.
func NewRefresher(source gateway.MarketSource, fallback []models.MarketItem, interval time.Duration, log zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	items := make([]models.MarketItem, len(fallback))
	copy(items, fallback)

	return &Refresher{
		source:   source,
		interval: interval,
		log:      log.With().Str("service", "market").Logger(),
		snapshot: Snapshot{Items: items, UpdatedAt: time.Now().UTC()},
	}
}

// Start refreshes once and then on every tick until Stop or ctx is done
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running || r.source == nil {
		return
	}
	r.running = true

	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.loop(ctx)

	r.log.Info().Dur("interval", r.interval).Msg("Market refresher started")
}

// Stop cancels the loop and waits for it to exit
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.cancel()
	r.wg.Wait()
	r.running = false
	r.log.Info().Msg("Market refresher stopped")
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh fetches quotes once and reports whether the snapshot changed
func (r *Refresher) Refresh(ctx context.Context) bool {
	if r.source == nil {
		return false
	}
	items, err := r.source.FetchMarket(ctx)
	if err != nil {
		if ctx.Err() == nil {
			metrics.RecordMarketRefresh("error")
			r.log.Warn().Err(err).Msg("Market refresh failed, keeping previous quotes")
		}
		return false
	}

	r.dataMu.Lock()
	r.snapshot = Snapshot{Items: items, UpdatedAt: time.Now().UTC(), Live: true}
	r.dataMu.Unlock()

	metrics.RecordMarketRefresh("success")
	r.log.Debug().Int("items", len(items)).Msg("Market quotes refreshed")
	return true
}

// Snapshot returns a copy of the current quotes
func (r *Refresher) Snapshot() Snapshot {
	r.dataMu.RLock()
	defer r.dataMu.RUnlock()
	s := r.snapshot
	s.Items = make([]models.MarketItem, len(r.snapshot.Items))
	copy(s.Items, r.snapshot.Items)
	return s
}
