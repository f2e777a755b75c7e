// Package llm wraps the OpenAI chat completion API behind a small
// interface so the plan service can be tested without network calls.
package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("llm: no API key configured")

const defaultModel = "gpt-4o-mini"

const programSystemPrompt = "You are an expert strength and conditioning coach. " +
	"Respond with STRICT JSON only, no markdown and no text outside the JSON object. " +
	"The program must be realistic, periodized and adapted to the profile. " +
	"Hard requirements: weekPlans.length == weeks, every week contains exactly " +
	"sessionsPerWeek sessions, 4 to 8 exercises per session, restSec between 30 and 240. " +
	"When injuries are listed, avoid risky movements and propose alternatives. " +
	"Include safetyNotes without giving medical advice."

// Client generates program JSON from a profile prompt.
type Client interface {
	GenerateProgramJSON(ctx context.Context, profileJSON string) (string, error)
}

type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a Client backed by the OpenAI API. Returns
// ErrNotConfigured when apiKey is empty so callers can disable the feature.
func NewOpenAIClient(apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = defaultModel
	}
	return &openAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// GenerateProgramJSON sends the profile to the model and returns its raw
// text output. Schema validation happens in the planner package.
func (c *openAIClient) GenerateProgramJSON(ctx context.Context, profileJSON string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: programSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("User profile:\n%s", profileJSON),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
