package mocks

import (
	"context"
	"sync"

	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/models"
)

// MockProvider returns scripted upstream responses per operation
type MockProvider struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Requests  []gateway.Request
}

var _ gateway.Provider = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

func (m *MockProvider) Generate(ctx context.Context, req gateway.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if err := m.Errors[req.Operation]; err != nil {
		return "", err
	}
	return m.Responses[req.Operation], nil
}

// MockSummarizer is a scripted Summarizer
type MockSummarizer struct {
	mu            sync.Mutex
	SummarizeFunc func(ctx context.Context, title, content string) (string, error)
	BriefingFunc  func(ctx context.Context, topic string) (*models.BriefingResponse, error)
	SummaryCalls  int
	BriefingCalls int
}

var _ gateway.Summarizer = (*MockSummarizer)(nil)

func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

func (m *MockSummarizer) SummarizeArticle(ctx context.Context, title, content string) (string, error) {
	m.mu.Lock()
	m.SummaryCalls++
	fn := m.SummarizeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, title, content)
	}
	return "• " + title, nil
}

func (m *MockSummarizer) GenerateBriefing(ctx context.Context, topic string) (*models.BriefingResponse, error) {
	m.mu.Lock()
	m.BriefingCalls++
	fn := m.BriefingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, topic)
	}
	return &models.BriefingResponse{
		Title:     topic,
		Summary:   "ملخص " + topic,
		KeyPoints: []string{"نقطة"},
		Outlook:   "إيجابية",
	}, nil
}

// MockMarketSource returns Items or Err and counts calls
type MockMarketSource struct {
	mu    sync.Mutex
	Items []models.MarketItem
	Err   error
	Calls int
}

var _ gateway.MarketSource = (*MockMarketSource)(nil)

func (m *MockMarketSource) FetchMarket(ctx context.Context) ([]models.MarketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

// CallCount returns Calls under the lock
func (m *MockMarketSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
