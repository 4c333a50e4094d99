// Package openai dispatches proofreading requests to an OpenAI-compatible
// chat completions endpoint using the json_schema response format.
package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"proofreader/api/internal/proofread/engine"
	"proofreader/api/internal/proofread/prompt"
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Engine struct {
	client *goopenai.Client
	model  string
}

func New(opt Options) *Engine {
	cfg := goopenai.DefaultConfig(strings.TrimSpace(opt.APIKey))
	if u := strings.TrimSpace(opt.BaseURL); u != "" {
		cfg.BaseURL = strings.TrimRight(u, "/")
	}
	model := strings.TrimSpace(opt.Model)
	if model == "" {
		model = goopenai.GPT4oMini
	}
	return &Engine{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (e *Engine) Name() string  { return "openai" }
func (e *Engine) Model() string { return e.model }

func (e *Engine) Generate(ctx context.Context, req prompt.Request) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, chatRequest(e.model, req))
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai generate: %w", engine.ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func chatRequest(model string, req prompt.Request) goopenai.ChatCompletionRequest {
	return goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: goopenai.ChatMessageRoleUser, Content: req.UserText},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   "proofreading",
				Schema: req.JSONSchema,
			},
		},
	}
}
