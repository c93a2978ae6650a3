package gateway

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini provider
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Generate runs a single generateContent call. Structured shapes are
// requested as JSON with a response schema.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if schema := geminiSchema(req.Shape); schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

func geminiSchema(shape Shape) *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}

	switch shape {
	case ShapeBriefing:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":     str,
				"summary":   str,
				"keyPoints": {Type: genai.TypeArray, Items: str},
				"outlook":   str,
			},
			Required: []string{"title", "summary", "keyPoints", "outlook"},
		}
	case ShapeMarket:
		return &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": str,
					"price":  str,
					"change": str,
				},
				Required: []string{"symbol", "price", "change"},
			},
		}
	default:
		return nil
	}
}
