// Package gateway talks to the text generation service that writes article
// summaries, analyst briefings and market quotes.
//
// Calls are one-shot: a failure is terminal for that invocation and is never
// retried here. Callers surface the failure and let the reader re-trigger.
package gateway

import (
	"context"
	"errors"

	"github.com/nashra-news-api/internal/models"
)

// User-facing failure messages
const (
	MsgSummaryFailed  = "عذراً، فشل توليد الملخص الذكي."
	MsgBriefingFailed = "حدث خطأ أثناء توليد التحليل. يرجى المحاولة لاحقاً."
	MsgMarketFailed   = "تعذر جلب بيانات السوق."
)

var (
	// ErrGeneration marks every failed generation call
	ErrGeneration = errors.New("text generation failed")

	// ErrNotConfigured is returned when a provider lacks credentials
	ErrNotConfigured = errors.New("text generation provider not configured")

	// ErrBusy is returned when a request for the same subject is still pending
	ErrBusy = errors.New("request already in progress")
)

// GenerationError carries the user-facing message of a failed call. It
// matches ErrGeneration and the underlying cause with errors.Is.
type GenerationError struct {
	Operation string
	Message   string
	Err       error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGeneration, e.Err}
}

// Summarizer produces article summaries and topic briefings
type Summarizer interface {
	SummarizeArticle(ctx context.Context, title, content string) (string, error)
	GenerateBriefing(ctx context.Context, topic string) (*models.BriefingResponse, error)
}

// MarketSource fetches current ticker quotes
type MarketSource interface {
	FetchMarket(ctx context.Context) ([]models.MarketItem, error)
}

// Shape is the expected structure of a generated response
type Shape int

const (
	ShapeText Shape = iota
	ShapeBriefing
	ShapeMarket
)

// Request is one upstream generation call
type Request struct {
	Operation string
	Model     string
	Prompt    string
	Shape     Shape
}

// Provider performs a single upstream call and returns the raw text. For
// structured shapes the text is JSON.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
