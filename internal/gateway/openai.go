package gateway

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const jsonOnlyInstruction = "أجب بكائن JSON صالح فقط دون أي نص إضافي أو تنسيق markdown."

// OpenAIClient calls an OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	opts []option.RequestOption
}

// NewOpenAIClient creates a chat completions provider. baseURL is optional.
func NewOpenAIClient(apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrNotConfigured)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{opts: opts}, nil
}

// Generate sends the prompt as a single user turn. Structured shapes get a
// system instruction asking for bare JSON.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	client := openai.NewClient(c.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if req.Shape != ShapeText {
		msgs = append(msgs, openai.SystemMessage(jsonOnlyInstruction))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
