package utils

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DescriberInterface writes a short description of a destination.
type DescriberInterface interface {
	Describe(ctx context.Context, destination string) (string, error)
}

type OpenAIDescriber struct {
	client *openai.Client
	model  string
}

func NewOpenAIDescriber(apiKey, model string) DescriberInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIDescriber{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func describePrompt(destination string) string {
	return fmt.Sprintf("Describe %s as a travel destination in one sentence of at most 25 words. "+
		"Reply with the sentence only.", destination)
}

// cleanDescription strips quotes and markdown the models like to add.
func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'*_`")
	return strings.TrimSpace(s)
}

func (c *OpenAIDescriber) Describe(ctx context.Context, destination string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a concise travel writer."},
			{Role: openai.ChatMessageRoleUser, Content: describePrompt(destination)},
		},
		MaxTokens:   80,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w: %w", ErrProviderRequest, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrNoDataFound)
	}
	return cleanDescription(resp.Choices[0].Message.Content), nil
}
