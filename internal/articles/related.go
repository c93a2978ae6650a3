package articles

import (
	"math/rand/v2"

	"github.com/nashra-news-api/internal/models"
)

// RelatedInCategory returns up to n other articles of the same category, in
// list order. Used by the article detail page.
func RelatedInCategory(list []models.Article, article models.Article, n int) []models.Article {
	out := make([]models.Article, 0, n)
	for _, a := range list {
		if len(out) == n {
			break
		}
		if a.ID != article.ID && a.Category == article.Category {
			out = append(out, a)
		}
	}
	return out
}

// RelatedCandidates returns every article that shares the category or at
// least one tag with article, excluding article itself
func RelatedCandidates(list []models.Article, article models.Article) []models.Article {
	out := make([]models.Article, 0)
	for _, a := range list {
		if a.ID == article.ID {
			continue
		}
		if a.Category == article.Category || sharesTag(a, article) {
			out = append(out, a)
		}
	}
	return out
}

// SampleRelated picks up to n articles at random from RelatedCandidates.
//
// This is intentionally non-deterministic: each call may return a different
// sample. Tests must assert membership in the candidate set, not the order
// or identity of the picks. A nil rng uses the global source.
func SampleRelated(list []models.Article, article models.Article, n int, rng *rand.Rand) []models.Article {
	candidates := RelatedCandidates(list, article)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

func sharesTag(a, b models.Article) bool {
	for _, t := range a.Tags {
		if b.HasTag(t) {
			return true
		}
	}
	return false
}
