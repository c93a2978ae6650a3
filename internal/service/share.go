package service

import (
	"net/url"
	"strings"

	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/route"
)

// ShareLinksFor builds the canonical and social sharing URLs of an article
func ShareLinksFor(origin string, a models.Article) models.ShareLinks {
	canonical := pageURL(origin, route.ArticleFragment(a.ID))
	enc := encodeComponent(canonical)

	return models.ShareLinks{
		Canonical: canonical,
		Twitter:   "https://twitter.com/intent/tweet?text=" + encodeComponent(a.Title) + "&url=" + enc,
		LinkedIn:  "https://www.linkedin.com/sharing/share-offsite/?url=" + enc,
		Facebook:  "https://www.facebook.com/sharer/sharer.php?u=" + enc,
	}
}

// AnalystShareURL links to the analyst tool pre-filled with topic
func AnalystShareURL(origin, topic string) string {
	return pageURL(origin, route.AnalystFragment(topic))
}

func pageURL(origin, fragment string) string {
	return strings.TrimRight(origin, "/") + "/#" + fragment
}

// encodeComponent escapes s for use as a single query value, spaces as %20
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
