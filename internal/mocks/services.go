package mocks

import (
	"context"

	"github.com/nashra-news-api/internal/market"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/service"
)

// MockIntelligenceService is a mock implementation of IntelligenceService
type MockIntelligenceService struct {
	SummarizeFunc func(ctx context.Context, sessionID, articleID string) (*models.SummaryResponse, error)
	BriefingFunc  func(ctx context.Context, sessionID, topic string) (*models.BriefingResponse, error)
}

// Verify interface compliance
var _ service.IntelligenceService = (*MockIntelligenceService)(nil)

func NewMockIntelligenceService() *MockIntelligenceService {
	return &MockIntelligenceService{}
}

func (m *MockIntelligenceService) Summarize(ctx context.Context, sessionID, articleID string) (*models.SummaryResponse, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, sessionID, articleID)
	}
	return &models.SummaryResponse{ArticleID: articleID, Summary: "ملخص"}, nil
}

func (m *MockIntelligenceService) Briefing(ctx context.Context, sessionID, topic string) (*models.BriefingResponse, error) {
	if m.BriefingFunc != nil {
		return m.BriefingFunc(ctx, sessionID, topic)
	}
	return &models.BriefingResponse{Title: topic, Summary: "s", KeyPoints: []string{}, Outlook: "o"}, nil
}

func (m *MockIntelligenceService) AnalystShareURL(topic string) string {
	return service.AnalystShareURL("http://localhost:8080", topic)
}

// MockMarketService serves a fixed snapshot
type MockMarketService struct {
	Current market.Snapshot
}

var _ service.MarketService = (*MockMarketService)(nil)

func NewMockMarketService(items ...models.MarketItem) *MockMarketService {
	return &MockMarketService{Current: market.Snapshot{Items: items}}
}

func (m *MockMarketService) Snapshot() market.Snapshot {
	return m.Current
}
