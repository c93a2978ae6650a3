// Package content turns authored article text into safe HTML and sanitizes
// reader input.
package content

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/nashra-news-api/internal/models"
)

const (
	wordsPerMinute = 200
	maxStripPasses = 8
)

// Renderer converts article bodies to HTML and strips markup from reader input
type Renderer struct {
	md     goldmark.Markdown
	body   *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewRenderer creates a renderer with the UGC policy for bodies and the
// strict policy for comments
func NewRenderer() *Renderer {
	body := bluemonday.UGCPolicy()
	body.RequireNoFollowOnLinks(true)
	body.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md:     goldmark.New(),
		body:   body,
		strict: bluemonday.StrictPolicy(),
	}
}

// RenderHTML renders an article body. Blank-line separated blocks become
// paragraphs; leading indentation from authored text is dropped so it is not
// mistaken for code blocks.
func (r *Renderer) RenderHTML(body string) (string, error) {
	var src strings.Builder
	for _, line := range strings.Split(body, "\n") {
		src.WriteString(strings.TrimSpace(line))
		src.WriteByte('\n')
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src.String()), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.body.Sanitize(buf.String()), nil
}

// StripTags removes all markup from reader input and trims it. The result is
// plain text. Entities decoded after sanitizing are sanitized again until the
// text is stable, so escaped markup cannot come back as live tags.
func (r *Renderer) StripTags(s string) string {
	for i := 0; i < maxStripPasses; i++ {
		out := strings.TrimSpace(html.UnescapeString(r.strict.Sanitize(s)))
		if out == s {
			return out
		}
		s = out
	}
	return strings.TrimSpace(r.strict.Sanitize(s))
}

// ReadingTime returns the authored reading time or an estimate at 200 words
// per minute, never less than one minute
func ReadingTime(a models.Article) string {
	if a.ReadingTime != "" {
		return a.ReadingTime
	}
	return fmt.Sprintf("%d دقائق", EstimateMinutes(a.Content))
}

// EstimateMinutes is ceil(words/200), minimum 1
func EstimateMinutes(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return max(1, minutes)
}
