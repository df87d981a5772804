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

// OpenAI calls the OpenAI chat completions API.
type OpenAI struct {
	deps Deps
}

// NewOpenAI creates an OpenAI client.
func NewOpenAI(deps Deps) *OpenAI {
	return &OpenAI{deps: deps}
}

func (o *OpenAI) Name() string { return config.ProviderOpenAI }

func (o *OpenAI) Available() bool { return os.Getenv("OPENAI_API_KEY") != "" }

func (o *OpenAI) Chat(ctx context.Context, system, message string) (string, error) {
	ctx, span := o.deps.Tracer.Start(ctx, "openai_api_call")
	defer span.End()

	start := time.Now()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	text, usage, err := openAICompatChat(ctx, o.deps, openAICompatCall{
		url:    "https://api.openai.com/v1/chat/completions",
		model:  "gpt-4o-mini",
		apiKey: apiKey,
		system: system,
		user:   message,
	})
	if err != nil {
		return "", err
	}

	recordDuration(ctx, o.deps.Meter, start)
	recordUsage(ctx, o.deps.Meter, usage)

	return text, nil
}

// openAICompatCall describes one call to an OpenAI-compatible endpoint.
type openAICompatCall struct {
	url    string
	model  string
	apiKey string
	system string
	user   string
}

// openAICompatChat is shared by OpenAI and Grok, which speak the same wire shape.
func openAICompatChat(ctx context.Context, deps Deps, call openAICompatCall) (string, map[string]interface{}, error) {
	messages := []map[string]string{}
	if call.system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": call.system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": call.user})

	reqBody := backend.OpenAIRequest{
		Model:    call.model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	raw, err := postJSON(ctx, deps.HTTPClient, call.url, jsonData, map[string]string{
		"Authorization": "Bearer " + call.apiKey,
	})
	if err != nil {
		return "", nil, err
	}

	var apiResp backend.OpenAIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", nil, fmt.Errorf("empty response from %s", call.url)
	}

	return apiResp.Choices[0].Message.Content, apiResp.Usage, nil
}
