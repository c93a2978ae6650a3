package models

// BriefingRequest is the analyst form submission
type BriefingRequest struct {
	Topic string `json:"topic"`
}

// BriefingResponse is the structured analyst briefing
type BriefingResponse struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	Outlook   string   `json:"outlook"`
}

// SummaryResponse is the result of an article summary request
type SummaryResponse struct {
	ArticleID string `json:"articleId"`
	Summary   string `json:"summary"`
}

// MarketItem is one market ticker quote
type MarketItem struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Price  string `json:"price" yaml:"price"`
	Change string `json:"change" yaml:"change"`
}
