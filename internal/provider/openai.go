// Package provider adapts language model APIs to the agent's Provider interface.
package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"coup/internal/agent"
)

// OpenAIConfig selects the endpoint and sampling of chat completions.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // empty for api.openai.com
	Model       string
	Temperature float64
}

// OpenAI streams chat completions. It is safe for concurrent use.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Stream sends prompt as the system message and streams the reply.
func (o *OpenAI) Stream(ctx context.Context, prompt string) (agent.Stream, error) {
	s := o.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(prompt)},
		Temperature: openai.Float(o.temperature),
	})
	if err := s.Err(); err != nil {
		s.Close()
		return nil, fmt.Errorf("open chat stream: %w", err)
	}
	return &chunkStream{s: s}, nil
}

// chunkStream yields the text deltas of a chat completion stream.
type chunkStream struct {
	s   *ssestream.Stream[openai.ChatCompletionChunk]
	cur string
}

func (c *chunkStream) Next() bool {
	for c.s.Next() {
		chunk := c.s.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		c.cur = chunk.Choices[0].Delta.Content
		return true
	}
	return false
}

func (c *chunkStream) Current() string { return c.cur }
func (c *chunkStream) Err() error      { return c.s.Err() }
func (c *chunkStream) Close() error    { return c.s.Close() }
