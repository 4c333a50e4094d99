// Package gemini dispatches proofreading requests to Gemini through the
// generative-ai-go client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"proofreader/api/internal/proofread/engine"
	"proofreader/api/internal/proofread/prompt"
)

const DefaultModel = "gemini-2.0-pro-exp-02-05"

var ErrNoCredentials = errors.New("gemini: GEMINI_API_KEY or GOOGLE_APPLICATION_CREDENTIALS is required")

type Options struct {
	APIKey          string
	CredentialsFile string
	Endpoint        string
	Model           string
	// Temperature is left to the server default when nil.
	Temperature *float32
}

// Engine holds one client for the lifetime of the service. The client is
// safe for concurrent use; models are cheap per-call views over it.
type Engine struct {
	client      *genai.Client
	model       string
	temperature *float32
}

func New(ctx context.Context, opt Options) (*Engine, error) {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(opt.APIKey) != "":
		opts = append(opts, option.WithAPIKey(strings.TrimSpace(opt.APIKey)))
	case strings.TrimSpace(opt.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(strings.TrimSpace(opt.CredentialsFile)))
	default:
		return nil, ErrNoCredentials
	}
	if ep := strings.TrimSpace(opt.Endpoint); ep != "" {
		opts = append(opts, option.WithEndpoint(ep))
	}

	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	model := strings.TrimSpace(opt.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Engine{client: cl, model: model, temperature: opt.Temperature}, nil
}

func (e *Engine) Name() string  { return "gemini" }
func (e *Engine) Model() string { return e.model }

func (e *Engine) Close() error { return e.client.Close() }

// Generate performs exactly one GenerateContent call.
func (e *Engine) Generate(ctx context.Context, req prompt.Request) (string, error) {
	m := e.client.GenerativeModel(e.model)
	configure(m, req, e.temperature)

	resp, err := m.GenerateContent(ctx, genai.Text(req.UserText))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini generate: %w", engine.ErrEmptyResponse)
	}
	return txt, nil
}

func configure(m *genai.GenerativeModel, req prompt.Request, temperature *float32) {
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemInstruction)},
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      temperature,
		ResponseMIMEType: req.ResponseMIMEType,
		ResponseSchema:   req.Schema,
	}
}

// firstText joins the text parts of the primary candidate only.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
