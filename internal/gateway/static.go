package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nashra-news-api/internal/models"
)

// StaticProvider answers without any upstream service. Summaries are the
// leading sentences of the article and briefings are templated on the topic.
// It cannot quote markets.
type StaticProvider struct{}

// NewStaticProvider creates the offline provider
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch req.Shape {
	case ShapeBriefing:
		topic := lastQuoted(req.Prompt)
		raw, err := json.Marshal(models.BriefingResponse{
			Title:   fmt.Sprintf("نظرة سريعة: %s", topic),
			Summary: fmt.Sprintf("يستعرض هذا التقرير أبرز التحولات المرتبطة بـ %s وأثرها على رواد الأعمال والمستثمرين في المنطقة.", topic),
			KeyPoints: []string{
				"تسارع الاستثمار في الحلول الرقمية",
				"تزايد اهتمام الحكومات بالأطر التنظيمية",
				"فرص نمو واضحة للشركات الناشئة",
			},
			Outlook: "يتوقع استمرار النمو خلال السنوات القادمة مع نضوج السوق.",
		})
		return string(raw), err
	case ShapeMarket:
		return "", fmt.Errorf("static provider: %w", ErrNotConfigured)
	default:
		return leadingSentences(contentOf(req.Prompt), 3), nil
	}
}

// lastQuoted returns the last double-quoted span of a prompt
func lastQuoted(prompt string) string {
	end := strings.LastIndex(prompt, "\"")
	if end < 0 {
		return prompt
	}
	start := strings.LastIndex(prompt[:end], "\"")
	if start < 0 {
		return prompt
	}
	return prompt[start+1 : end]
}

func contentOf(prompt string) string {
	_, body, ok := strings.Cut(prompt, "المحتوى:")
	if !ok {
		return prompt
	}
	return strings.Trim(strings.TrimSpace(body), "\"")
}

func leadingSentences(text string, n int) string {
	var points []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool { return r == '.' || r == '\n' }) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		points = append(points, "• "+s+".")
		if len(points) == n {
			break
		}
	}
	return strings.Join(points, "\n")
}
