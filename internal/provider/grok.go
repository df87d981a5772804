package provider

import (
	"context"
	"fmt"
	"os"
	"time"

	"aura/internal/config"
)

// Grok calls the Grok API, which is OpenAI-compatible.
type Grok struct {
	deps Deps
}

// NewGrok creates a Grok client.
func NewGrok(deps Deps) *Grok {
	return &Grok{deps: deps}
}

func (g *Grok) Name() string { return config.ProviderGrok }

func (g *Grok) Available() bool { return os.Getenv("GROK_API_KEY") != "" }

func (g *Grok) Chat(ctx context.Context, system, message string) (string, error) {
	ctx, span := g.deps.Tracer.Start(ctx, "grok_api_call")
	defer span.End()

	start := time.Now()

	apiKey := os.Getenv("GROK_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GROK_API_KEY not set")
	}

	text, usage, err := openAICompatChat(ctx, g.deps, openAICompatCall{
		url:    "https://api.x.ai/v1/chat/completions",
		model:  "grok-2-latest",
		apiKey: apiKey,
		system: system,
		user:   message,
	})
	if err != nil {
		return "", err
	}

	recordDuration(ctx, g.deps.Meter, start)
	recordUsage(ctx, g.deps.Meter, usage)

	return text, nil
}
