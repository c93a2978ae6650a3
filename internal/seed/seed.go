// Package seed loads the static catalogue the service starts with: articles,
// authors, navigation, the market fallback quotes and analyst topic hints.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/validation"
)

//go:embed data.yaml
var embedded []byte

// Data is the decoded seed catalogue
type Data struct {
	Authors         []models.AuthorInfo `yaml:"authors"`
	Articles        []models.Article    `yaml:"articles"`
	NavLinks        []models.NavLink    `yaml:"navLinks"`
	Market          []models.MarketItem `yaml:"market"`
	SuggestedTopics []string            `yaml:"suggestedTopics"`
}

// Load reads the seed file at path, or the embedded catalogue when path is empty
func Load(path string) (*Data, error) {
	raw := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodes and validates a seed document
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *Data) validate() error {
	v := validation.NewValidator()
	var errs []error

	for i := range d.Authors {
		for _, ve := range v.ValidateAuthor(&d.Authors[i]) {
			errs = append(errs, fmt.Errorf("authors[%d]: %w", i, ve))
		}
	}
	for i := range d.Articles {
		for _, ve := range v.ValidateArticle(&d.Articles[i]) {
			errs = append(errs, fmt.Errorf("articles[%d]: %w", i, ve))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid seed: %w", errors.Join(errs...))
	}
	return nil
}
