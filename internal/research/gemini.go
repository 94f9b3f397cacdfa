package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/dikshacr123/research-agent/internal/config"
)

// GeminiProvider implements Provider against Gemini's OpenAI-compatible API.
type GeminiProvider struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewGeminiProvider creates a provider from the AI config. A missing API key
// is deliberately not an error here: it surfaces as ErrBackendUnavailable on
// the first call.
func NewGeminiProvider(cfg config.AIConfig) *GeminiProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL

	return &GeminiProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		hasKey: cfg.APIKey != "",
	}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Search researches a company and returns the findings.
func (p *GeminiProvider) Search(ctx context.Context, company string) (Findings, error) {
	content, err := p.generate(ctx, ResearchPrompt(company))
	if err != nil {
		return Findings{}, err
	}
	return Findings{
		Company:     company,
		Content:     content,
		RetrievedAt: time.Now(),
	}, nil
}

// Complete answers a prompt, optionally grounded with extra context.
func (p *GeminiProvider) Complete(ctx context.Context, prompt, contextText string) (string, error) {
	full := prompt
	if contextText != "" {
		full = fmt.Sprintf("Context:\n%s\n\n%s", contextText, prompt)
	}
	return p.generate(ctx, full)
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	if !p.hasKey {
		return "", fmt.Errorf("%w: no API key configured (set GEMINI_API_KEY)", ErrBackendUnavailable)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResult
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResult
	}
	return content, nil
}
