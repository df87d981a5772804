package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"aura/internal/backend"
	"aura/internal/config"
)

const anthropicURL = "https://api.anthropic.com/v1/messages"

// Anthropic calls the Anthropic messages API.
type Anthropic struct {
	deps  Deps
	model string
}

// NewAnthropic creates an Anthropic client.
func NewAnthropic(deps Deps) *Anthropic {
	return &Anthropic{deps: deps, model: "claude-sonnet-4-20250514"}
}

func (a *Anthropic) Name() string { return config.ProviderAnthropic }

func (a *Anthropic) Available() bool { return os.Getenv("ANTHROPIC_API_KEY") != "" }

func (a *Anthropic) Chat(ctx context.Context, system, message string) (string, error) {
	ctx, span := a.deps.Tracer.Start(ctx, "anthropic_api_call")
	defer span.End()

	start := time.Now()

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	reqBody := backend.AnthropicRequest{
		Model:     a.model,
		MaxTokens: 1024,
		System:    system,
		Messages: []backend.AnthropicMessage{
			{Role: "user", Content: message},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	raw, err := postJSON(ctx, a.deps.HTTPClient, anthropicURL, jsonData, map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	})
	if err != nil {
		return "", err
	}

	var apiResp backend.AnthropicResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	recordDuration(ctx, a.deps.Meter, start)
	recordUsage(ctx, a.deps.Meter, apiResp.Usage)

	for _, content := range apiResp.Content {
		if content.Type == "text" && content.Text != "" {
			return content.Text, nil
		}
	}

	return "", fmt.Errorf("empty response from Anthropic")
}
