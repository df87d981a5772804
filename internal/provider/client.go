// Package provider contains one outbound client per hosted chat-completion
// service. Each client normalizes the provider's response to plain text or
// reports failure; auth, rate-limit, and network errors are not
// distinguished, callers treat every failure the same way.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"aura/internal/config"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Client is a single hosted chat-completion provider.
type Client interface {
	// Name returns the provider identifier.
	Name() string

	// Available reports whether a credential is present. A provider
	// without one is never attempted.
	Available() bool

	// Chat sends one user message (with an optional system prompt) and
	// returns the assistant text.
	Chat(ctx context.Context, system, message string) (string, error)
}

// Deps carries the shared plumbing every client uses.
type Deps struct {
	HTTPClient *http.Client
	Tracer     trace.Tracer
	Meter      metric.Meter
}

// FromConfig builds clients in the configured preference order.
func FromConfig(cfg *config.Config, deps Deps) []Client {
	if deps.HTTPClient == nil {
		deps.HTTPClient = &http.Client{Timeout: cfg.ProviderTimeout}
	}

	clients := make([]Client, 0, len(cfg.ProviderOrder))
	for _, name := range cfg.ProviderOrder {
		switch name {
		case config.ProviderAnthropic:
			clients = append(clients, NewAnthropic(deps))
		case config.ProviderOpenAI:
			clients = append(clients, NewOpenAI(deps))
		case config.ProviderGrok:
			clients = append(clients, NewGrok(deps))
		case config.ProviderOllama:
			clients = append(clients, NewOllama(deps, cfg.OllamaHost, cfg.OllamaModel))
		}
	}
	return clients
}

// postJSON sends the marshaled body and returns the raw response bytes.
// Non-2xx statuses are errors.
func postJSON(ctx context.Context, hc *http.Client, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("content-type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s - %s", resp.Status, string(raw))
	}

	return raw, nil
}

// recordDuration records the request duration histogram shared by all clients.
func recordDuration(ctx context.Context, meter metric.Meter, start time.Time) {
	histogram, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err == nil {
		histogram.Record(ctx, float64(time.Since(start).Milliseconds()))
	}
}

// recordUsage records token usage counters from a provider usage map.
func recordUsage(ctx context.Context, meter metric.Meter, usage map[string]interface{}) {
	for key, value := range usage {
		intVal, ok := value.(float64)
		if !ok {
			continue
		}
		counter, err := meter.Int64Counter(
			fmt.Sprintf("llm.usage.%s", key),
			metric.WithDescription(fmt.Sprintf("LLM usage metric: %s", key)),
		)
		if err != nil {
			continue
		}
		counter.Add(ctx, int64(intVal))
	}
}
