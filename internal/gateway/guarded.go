package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/metrics"
	"github.com/nashra-news-api/internal/models"
)

// Guarded fronts a Provider. Upstream calls are paced by a rate limiter,
// identical concurrent requests share one call, and every failure is turned
// into a GenerationError.
type Guarded struct {
	provider      Provider
	summaryModel  string
	briefingModel string
	timeout       time.Duration
	limiter       *rate.Limiter
	group         singleflight.Group
	log           zerolog.Logger
}

// New creates the gateway for the configured provider
func New(ctx context.Context, cfg config.AIConfig, log zerolog.Logger) (*Guarded, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "gemini":
		p, err = NewGeminiClient(ctx, cfg.APIKey)
	case "openai":
		p, err = NewOpenAIClient(cfg.APIKey, cfg.BaseURL)
	case "mock":
		p = NewStaticProvider()
	default:
		err = fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewGuarded(p, cfg, log), nil
}

// NewGuarded wraps an existing provider
func NewGuarded(p Provider, cfg config.AIConfig, log zerolog.Logger) *Guarded {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &Guarded{
		provider:      p,
		summaryModel:  cfg.SummaryModel,
		briefingModel: cfg.BriefingModel,
		timeout:       cfg.RequestTimeout,
		limiter:       rate.NewLimiter(limit, 1),
		log:           log.With().Str("component", "gateway").Str("provider", cfg.Provider).Logger(),
	}
}

// SummarizeArticle returns a short bullet summary of an article
func (g *Guarded) SummarizeArticle(ctx context.Context, title, content string) (string, error) {
	text, err := g.do(ctx, summaryKey(title, content), Request{
		Operation: opSummary,
		Model:     g.summaryModel,
		Prompt:    summaryPrompt(title, content),
		Shape:     ShapeText,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty summary")
	}
	if err != nil {
		return "", g.fail(opSummary, MsgSummaryFailed, err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateBriefing returns the four-field analyst briefing for topic
func (g *Guarded) GenerateBriefing(ctx context.Context, topic string) (*models.BriefingResponse, error) {
	text, err := g.do(ctx, "briefing:"+topic, Request{
		Operation: opBriefing,
		Model:     g.briefingModel,
		Prompt:    briefingPrompt(topic),
		Shape:     ShapeBriefing,
	})
	if err != nil {
		return nil, g.fail(opBriefing, MsgBriefingFailed, err)
	}
	b, err := parseBriefing(text)
	if err != nil {
		return nil, g.fail(opBriefing, MsgBriefingFailed, err)
	}
	return b, nil
}

// FetchMarket returns current quotes for MarketSymbols
func (g *Guarded) FetchMarket(ctx context.Context) ([]models.MarketItem, error) {
	text, err := g.do(ctx, opMarket, Request{
		Operation: opMarket,
		Model:     g.summaryModel,
		Prompt:    marketPrompt(),
		Shape:     ShapeMarket,
	})
	if err != nil {
		return nil, g.fail(opMarket, MsgMarketFailed, err)
	}
	items, err := parseMarket(text)
	if err != nil {
		return nil, g.fail(opMarket, MsgMarketFailed, err)
	}
	return items, nil
}

// MarketSource returns g when its provider can quote markets, else nil. The
// offline provider has no market data.
func (g *Guarded) MarketSource() MarketSource {
	if _, offline := g.provider.(*StaticProvider); offline {
		return nil
	}
	return g
}

// do runs req once per key among concurrent callers. The shared call runs on
// a context detached from any single caller; each caller stops waiting when
// its own ctx is done.
func (g *Guarded) do(ctx context.Context, key string, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := g.group.DoChan(key, func() (interface{}, error) {
		return g.generate(context.WithoutCancel(ctx), req)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Shared {
			g.log.Debug().Str("operation", req.Operation).Msg("Shared in-flight generation result")
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (g *Guarded) generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	if err := g.limiter.Wait(ctx); err != nil {
		metrics.RecordGeneration(req.Operation, "throttled", time.Since(start).Seconds())
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.provider.Generate(ctx, req)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordGeneration(req.Operation, status, time.Since(start).Seconds())

	g.log.Debug().
		Str("operation", req.Operation).
		Str("model", req.Model).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("Generation call finished")

	return text, err
}

// summaryKey identifies an article by its title and body
func summaryKey(title, content string) string {
	sum := sha256.Sum256([]byte(title + "\x00" + content))
	return "summary:" + hex.EncodeToString(sum[:])
}

func (g *Guarded) fail(operation, message string, err error) error {
	g.log.Error().Err(err).Str("operation", operation).Msg("Generation failed")
	return &GenerationError{Operation: operation, Message: message, Err: err}
}
