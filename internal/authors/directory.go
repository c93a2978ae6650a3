package authors

import (
	"strings"

	"github.com/nashra-news-api/internal/models"
)

const (
	placeholderRole = "كاتب مساهم"
	placeholderBio  = "كاتب مساهم في Entrepreneur NASHRA، مهتم بمواضيع التكنولوجيا والنمو الاقتصادي."
)

// Directory resolves author names to profiles. It is read-only after construction.
type Directory struct {
	byName map[string]models.AuthorInfo
}

// NewDirectory builds a directory from seed records
func NewDirectory(seed []models.AuthorInfo) *Directory {
	d := &Directory{byName: make(map[string]models.AuthorInfo, len(seed))}
	for _, a := range seed {
		a.Name = strings.TrimSpace(a.Name)
		a.Synthesized = false
		d.byName[a.Name] = a
	}
	return d
}

// Get returns the seed record for name
func (d *Directory) Get(name string) (models.AuthorInfo, bool) {
	a, ok := d.byName[name]
	return a, ok
}

// Lookup returns the seed record for name or a synthesized placeholder.
// It never fails.
func (d *Directory) Lookup(name string) models.AuthorInfo {
	if a, ok := d.byName[name]; ok {
		return a
	}
	return Placeholder(name)
}

// Count returns the number of seed authors
func (d *Directory) Count() int {
	return len(d.byName)
}

// Placeholder builds an unpersisted record for an author without seed data
func Placeholder(name string) models.AuthorInfo {
	return models.AuthorInfo{
		Name:        name,
		Role:        placeholderRole,
		Bio:         placeholderBio,
		Synthesized: true,
	}
}
