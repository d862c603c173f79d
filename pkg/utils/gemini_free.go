package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiTimeout = 30 * time.Second

// GeminiDescriber implements DescriberInterface using Google's Gemini models
type GeminiDescriber struct {
	client *genai.Client
	model  string
}

// NewGeminiDescriber creates a new Gemini client
func NewGeminiDescriber(apiKey, model string) (*GeminiDescriber, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiDescriber{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiDescriber) Describe(ctx context.Context, destination string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.3)
	m.SetTopP(0.5)
	m.SetMaxOutputTokens(80)

	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(describePrompt(destination)))
	if err != nil {
		return "", fmt.Errorf("gemini: %w: %w", ErrProviderRequest, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w", ErrNoDataFound)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return cleanDescription(sb.String()), nil
}

// Close closes the Gemini client
func (c *GeminiDescriber) Close() error {
	return c.client.Close()
}

// NewDescriber creates an OpenAI or Gemini describer. An empty provider disables descriptions.
func NewDescriber(provider, apiKey, model string) (DescriberInterface, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "":
		return nil, nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai describer: %w", ErrMissingCredential)
		}
		return NewOpenAIDescriber(apiKey, model), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini describer: %w", ErrMissingCredential)
		}
		describer, err := NewGeminiDescriber(apiKey, model)
		if err != nil {
			return nil, err
		}
		return describer, nil
	default:
		return nil, fmt.Errorf("unsupported describer provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
