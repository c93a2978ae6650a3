package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nashra-news-api/internal/models"
)

const (
	opSummary  = "summary"
	opBriefing = "briefing"
	opMarket   = "market"

	// maxSummaryInput bounds the article text sent upstream, in characters
	maxSummaryInput = 2000
)

// MarketSymbols are the quotes requested from the provider
var MarketSymbols = []string{"AAPL", "TSLA", "BTC", "ETH", "NVDA", "GOOGL"}

func summaryPrompt(title, content string) string {
	return fmt.Sprintf(`أنت مساعد ذكي لصحيفة "Entrepreneur NASHRA".
قم بتلخيص المقال التالي بأسلوب نقاط مختصرة وجذابة (بحد أقصى 3 نقاط).
اجعل الملخص مفيداً لرواد الأعمال والتقنيين.
المقال بعنوان: "%s"
المحتوى: "%s"`, title, truncateRunes(content, maxSummaryInput))
}

func briefingPrompt(topic string) string {
	return fmt.Sprintf(`أنت محلل أعمال وتقنية خبير لصحيفة "Entrepreneur NASHRA".
قم بإنشاء تقرير موجز وتحليلي حول الموضوع التالي: "%s".
يجب أن يكون التقرير باللغة العربية الفصحى المهنية.

المخرجات المطلوبة بتنسيق JSON:
1. title: عنوان جذاب للتقرير.
2. summary: ملخص تنفيذي (حوالي 50 كلمة).
3. keyPoints: قائمة من 3-5 نقاط رئيسية أو إحصائيات متوقعة.
4. outlook: نظرة مستقبلية قصيرة (20 كلمة).`, topic)
}

func marketPrompt() string {
	return fmt.Sprintf(`جلب أحدث أسعار الأسهم والعملات الرقمية التالية: %s.
أعطني السعر الحالي ونسبة التغيير خلال الـ 24 ساعة الماضية.
يجب أن تكون المخرجات بتنسيق JSON حصرياً كمصفوفة من الكائنات تحتوي على symbol و price و change.`,
		strings.Join(MarketSymbols, ", "))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// stripFences removes a markdown code fence around a JSON payload
func stripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func parseBriefing(text string) (*models.BriefingResponse, error) {
	var b models.BriefingResponse
	if err := json.Unmarshal([]byte(stripFences(text)), &b); err != nil {
		return nil, fmt.Errorf("decode briefing: %w", err)
	}
	if b.Title == "" || b.Summary == "" || b.Outlook == "" {
		return nil, errors.New("briefing is missing required fields")
	}
	if b.KeyPoints == nil {
		b.KeyPoints = []string{}
	}
	return &b, nil
}

func parseMarket(text string) ([]models.MarketItem, error) {
	var items []models.MarketItem
	if err := json.Unmarshal([]byte(stripFences(text)), &items); err != nil {
		return nil, fmt.Errorf("decode market data: %w", err)
	}
	out := items[:0]
	for _, it := range items {
		if it.Symbol != "" && it.Price != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("market data is empty")
	}
	return out, nil
}
