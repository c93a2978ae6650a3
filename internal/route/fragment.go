// Package route turns address fragments into view states and back.
//
// Grammar (leading '#' optional):
//
//	""  | "home"            Home
//	"analyst[?topic=..]"    Analyst
//	"article/<id>[/..]"     Article, or Home with a corrective rewrite if id is unknown
//	"author/<name>[/..]"    Author, seed record or placeholder
//	"<token>"               Category view tagged with the raw token
package route

import (
	"net/url"
	"strings"

	"github.com/nashra-news-api/internal/models"
)

const (
	// HomeFragment is written back when a fragment cannot be honoured
	HomeFragment = "home"

	tokenHome    = "home"
	tokenAnalyst = "analyst"

	prefixArticle = "article/"
	prefixAuthor  = "author/"
)

// categoryTokens maps route tokens to categories. Every category has a
// token; unknown tokens are still valid views and fall back to the full list.
var categoryTokens = map[string]models.Category{
	"tech":     models.CategoryTech,
	"business": models.CategoryBusiness,
	"startups": models.CategoryStartups,
	"ai":       models.CategoryAI,
	"crypto":   models.CategoryCrypto,
	"space":    models.CategorySpace,
	"green":    models.CategoryGreen,
}

// CategoryForToken maps a route token to its category
func CategoryForToken(token string) (models.Category, bool) {
	c, ok := categoryTokens[token]
	return c, ok
}

// ArticleLookup finds articles by id
type ArticleLookup interface {
	FindByID(id string) (models.Article, bool)
}

// AuthorLookup resolves author names, synthesizing unknown ones
type AuthorLookup interface {
	Lookup(name string) models.AuthorInfo
}

// Normalize strips the leading '#' and surrounding whitespace
func Normalize(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "#")
}

// Resolve maps a fragment to a view. corrected is true when the fragment
// named an unknown article and the caller must rewrite the address to
// HomeFragment.
func Resolve(raw string, articles ArticleLookup, authors AuthorLookup) (view models.ViewState, corrected bool) {
	frag := Normalize(raw)
	path, query := splitQuery(frag)

	switch {
	case path == "" || path == tokenHome:
		return models.HomeView(), false

	case strings.HasPrefix(path, prefixArticle):
		id := firstSegment(strings.TrimPrefix(path, prefixArticle))
		if _, ok := articles.FindByID(id); ok {
			return models.ViewState{Kind: models.ViewArticle, ArticleID: id}, false
		}
		return models.HomeView(), true

	case strings.HasPrefix(path, prefixAuthor):
		name := unescape(firstSegment(strings.TrimPrefix(path, prefixAuthor)))
		author := authors.Lookup(name)
		return models.ViewState{Kind: models.ViewAuthor, Author: &author}, false

	case path == tokenAnalyst:
		return models.ViewState{Kind: models.ViewAnalyst, Topic: query.Get("topic")}, false

	default:
		return models.ViewState{Kind: models.ViewCategory, Token: path}, false
	}
}

// Format serializes a view back to its canonical fragment (without '#')
func Format(v models.ViewState) string {
	switch v.Kind {
	case models.ViewArticle:
		return ArticleFragment(v.ArticleID)
	case models.ViewAuthor:
		if v.Author == nil {
			return HomeFragment
		}
		return AuthorFragment(v.Author.Name)
	case models.ViewAnalyst:
		return AnalystFragment(v.Topic)
	case models.ViewCategory:
		return v.Token
	default:
		return HomeFragment
	}
}

// ArticleFragment is the fragment of an article detail page
func ArticleFragment(id string) string {
	return prefixArticle + id
}

// AuthorFragment is the fragment of an author profile
func AuthorFragment(name string) string {
	return prefixAuthor + url.PathEscape(name)
}

// AnalystFragment is the fragment of the analyst tool, optionally pre-filled
func AnalystFragment(topic string) string {
	if topic == "" {
		return tokenAnalyst
	}
	return tokenAnalyst + "?topic=" + url.QueryEscape(topic)
}

func splitQuery(frag string) (string, url.Values) {
	path, rawQuery, found := strings.Cut(frag, "?")
	if !found {
		return path, url.Values{}
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return path, url.Values{}
	}
	return path, q
}

// firstSegment drops anything after the next '/'
func firstSegment(s string) string {
	seg, _, _ := strings.Cut(s, "/")
	return seg
}

func unescape(s string) string {
	if out, err := url.PathUnescape(s); err == nil {
		return out
	}
	return s
}
