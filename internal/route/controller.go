package route

import (
	"sync"
	"time"

	"github.com/nashra-news-api/internal/models"
)

// Timer is a pending delayed callback
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

// Options configures a Controller
type Options struct {
	// LoadingWindow is how long the skeleton flag stays set after a view change
	LoadingWindow time.Duration

	// AfterFunc overrides the timer source, mainly for tests
	AfterFunc AfterFunc

	// OnViewChange runs under the controller lock after every view change.
	// It must not call back into the controller.
	OnViewChange func(prev, next models.ViewState)
}

// Controller is the per-session view state machine. The address fragment is
// the only navigation input: in-app navigation writes a fragment and goes
// through the same resolution as an external change. Events are serialized.
type Controller struct {
	mu       sync.Mutex
	articles ArticleLookup
	authors  AuthorLookup
	opts     Options

	started   bool
	view      models.ViewState
	fragment  string
	corrected bool
	scrollTop uint64

	loading    bool
	generation uint64
	timer      Timer
	closed     bool
}

// NewController creates a controller. The first HandleFragmentChange call is
// the initial load.
func NewController(articles ArticleLookup, authors AuthorLookup, opts Options) *Controller {
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	return &Controller{
		articles: articles,
		authors:  authors,
		opts:     opts,
		view:     models.HomeView(),
		fragment: HomeFragment,
	}
}

// HandleFragmentChange resolves a fragment-changed event
func (c *Controller) HandleFragmentChange(raw string) models.ViewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, corrected := Resolve(raw, c.articles, c.authors)

	frag := Normalize(raw)
	if frag == "" || corrected {
		frag = HomeFragment
	}
	c.fragment = frag
	c.corrected = corrected

	prev := c.view
	changed := !c.started || !prev.Equal(next)
	c.started = true
	c.view = next

	if changed {
		c.scrollTop++
		c.restartLoading(next)
		if c.opts.OnViewChange != nil {
			c.opts.OnViewChange(prev, next)
		}
	}

	return c.snapshotLocked()
}

// Navigate performs in-app navigation by writing fragment
func (c *Controller) Navigate(fragment string) models.ViewSnapshot {
	return c.HandleFragmentChange(fragment)
}

// NavigateToArticle opens an article detail page
func (c *Controller) NavigateToArticle(id string) models.ViewSnapshot {
	return c.HandleFragmentChange(ArticleFragment(id))
}

// NavigateToAuthor opens an author profile
func (c *Controller) NavigateToAuthor(name string) models.ViewSnapshot {
	return c.HandleFragmentChange(AuthorFragment(name))
}

// Snapshot returns the current view
func (c *Controller) Snapshot() models.ViewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any pending loading timer. The controller keeps answering
// Snapshot but timers never fire into it again.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.stopTimer()
}

// restartLoading opens a new loading window for views that show skeletons and
// invalidates any window still pending from an earlier view
func (c *Controller) restartLoading(next models.ViewState) {
	c.generation++
	c.stopTimer()

	if c.closed || !next.ShowsLoading() || c.opts.LoadingWindow <= 0 {
		c.loading = false
		return
	}

	c.loading = true
	gen := c.generation
	c.timer = c.opts.AfterFunc(c.opts.LoadingWindow, func() { c.finishLoading(gen) })
}

// finishLoading clears the flag only if no later view change happened
func (c *Controller) finishLoading(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.loading = false
	c.timer = nil
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) snapshotLocked() models.ViewSnapshot {
	return models.ViewSnapshot{
		View:      c.view,
		Fragment:  c.fragment,
		Corrected: c.corrected,
		Loading:   c.loading,
		ScrollTop: c.scrollTop,
	}
}
