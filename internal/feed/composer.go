// Package feed derives the render-ready slices of a listing page.
//
// Compose is a pure function of the article list, the resolved view and the
// secondary filter. Nothing is cached; callers recompute from the current
// authoritative list on every request.
package feed

import (
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/route"
)

const (
	sideHeroSize = 2

	// DefaultMostPopular is the size of the most popular rail
	DefaultMostPopular = 5
)

// RankedArticle is an entry of the most popular rail
type RankedArticle struct {
	Rank    int            `json:"rank"` // 1-indexed
	Article models.Article `json:"article"`
}

// Feed is the composed listing page
type Feed struct {
	// Category is the route-level category, empty for Home/Analyst or unmapped tokens
	Category models.Category `json:"category,omitempty"`

	MainFeatured *models.Article `json:"mainFeatured"`
	SideHero     []models.Article `json:"sideHero"`
	// NeedsPromo is set when fewer than two side hero articles exist
	NeedsPromo bool             `json:"needsPromo"`
	TailFeed   []models.Article `json:"tailFeed"`

	Filter models.Category `json:"filter"`
	// FilterEmpty is the "no results, reset" state of the secondary filter
	FilterEmpty bool `json:"filterEmpty"`

	MostPopular []RankedArticle `json:"mostPopular"`
}

// Options tunes Compose
type Options struct {
	MostPopular int
}

// Compose builds the feed for view. filter is the Home "latest" pill; "all"
// or empty disables it.
func Compose(list []models.Article, view models.ViewState, filter models.Category, opts Options) Feed {
	if filter == "" {
		filter = models.CategoryAll
	}
	if opts.MostPopular <= 0 {
		opts.MostPopular = DefaultMostPopular
	}

	category, working := WorkingSet(list, view)

	f := Feed{
		Category:    category,
		SideHero:    []models.Article{},
		TailFeed:    []models.Article{},
		Filter:      filter,
		MostPopular: MostPopular(list, opts.MostPopular),
	}

	main, ok := mainFeatured(working)
	if !ok {
		f.NeedsPromo = true
		return f
	}
	f.MainFeatured = &main

	others := make([]models.Article, 0, len(working))
	for _, a := range working {
		if a.ID != main.ID {
			others = append(others, a)
		}
	}

	n := min(sideHeroSize, len(others))
	f.SideHero = append(f.SideHero, others[:n]...)
	f.NeedsPromo = len(f.SideHero) < sideHeroSize

	tail := others[n:]
	if filter != models.CategoryAll {
		tail = byCategory(tail, filter)
		f.FilterEmpty = len(tail) == 0
	}
	f.TailFeed = append(f.TailFeed, tail...)

	return f
}

// WorkingSet returns the route-level subset of list. Home, Analyst and
// tokens without a category mapping use the full list.
func WorkingSet(list []models.Article, view models.ViewState) (models.Category, []models.Article) {
	if view.Kind != models.ViewCategory {
		return "", list
	}
	category, ok := route.CategoryForToken(view.Token)
	if !ok {
		return "", list
	}
	return category, byCategory(list, category)
}

// MostPopular returns the first n articles of the unfiltered list, ranked from 1
func MostPopular(list []models.Article, n int) []RankedArticle {
	n = min(n, len(list))
	out := make([]RankedArticle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, RankedArticle{Rank: i + 1, Article: list[i]})
	}
	return out
}

// FeaturedStories returns the first n featured articles of the full list
func FeaturedStories(list []models.Article, n int) []models.Article {
	out := make([]models.Article, 0, n)
	for _, a := range list {
		if len(out) == n {
			break
		}
		if a.IsFeatured {
			out = append(out, a)
		}
	}
	return out
}

// mainFeatured is the first featured article, else the first article
func mainFeatured(working []models.Article) (models.Article, bool) {
	for _, a := range working {
		if a.IsFeatured {
			return a, true
		}
	}
	if len(working) > 0 {
		return working[0], true
	}
	return models.Article{}, false
}

func byCategory(list []models.Article, c models.Category) []models.Article {
	out := make([]models.Article, 0, len(list))
	for _, a := range list {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}
