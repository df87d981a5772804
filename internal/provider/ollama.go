package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aura/internal/backend"
	"aura/internal/config"
)

// Ollama calls a local Ollama instance. A configured host stands in for a
// credential: with no host set the provider is never attempted.
type Ollama struct {
	deps  Deps
	host  string
	model string
}

// NewOllama creates an Ollama client.
func NewOllama(deps Deps, host, model string) *Ollama {
	return &Ollama{deps: deps, host: host, model: model}
}

func (o *Ollama) Name() string { return config.ProviderOllama }

func (o *Ollama) Available() bool { return o.host != "" }

func (o *Ollama) Chat(ctx context.Context, system, message string) (string, error) {
	ctx, span := o.deps.Tracer.Start(ctx, "ollama_api_call")
	defer span.End()

	start := time.Now()

	if o.host == "" {
		return "", fmt.Errorf("OLLAMA_HOST not set")
	}

	messages := []map[string]string{}
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": message})

	reqBody := backend.OllamaRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	raw, err := postJSON(ctx, o.deps.HTTPClient, o.host+"/api/chat", jsonData, nil)
	if err != nil {
		return "", err
	}

	var apiResp backend.OllamaResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Message.Content == "" {
		return "", fmt.Errorf("empty response from Ollama")
	}

	recordDuration(ctx, o.deps.Meter, start)

	return apiResp.Message.Content, nil
}
