package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aura/internal/backend"
	"aura/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func testDeps() Deps {
	return Deps{
		HTTPClient: http.DefaultClient,
		Tracer:     tracenoop.NewTracerProvider().Tracer("test"),
		Meter:      metricnoop.NewMeterProvider().Meter("test"),
	}
}

func TestOllamaChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)

		var req backend.OllamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.False(t, req.Stream)
		require.Len(t, req.Messages, 2) // system + user

		resp := backend.OllamaResponse{Done: true}
		resp.Message.Role = "assistant"
		resp.Message.Content = "hello from ollama"
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewOllama(testDeps(), srv.URL, "llama3:latest")
	require.True(t, c.Available())

	text, err := c.Chat(context.Background(), "be brief", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello from ollama", text)
}

func TestOllamaChatNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllama(testDeps(), srv.URL, "llama3:latest")

	_, err := c.Chat(context.Background(), "", "hi")
	assert.Error(t, err)
}

func TestOllamaChatEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(backend.OllamaResponse{Done: true})
	}))
	defer srv.Close()

	c := NewOllama(testDeps(), srv.URL, "llama3:latest")

	_, err := c.Chat(context.Background(), "", "hi")
	assert.Error(t, err)
}

func TestOllamaUnavailableWithoutHost(t *testing.T) {
	c := NewOllama(testDeps(), "", "llama3:latest")
	assert.False(t, c.Available())
}

func TestFromConfigRespectsOrder(t *testing.T) {
	cfg := &config.Config{
		ProviderOrder:   []string{"grok", "anthropic"},
		ProviderTimeout: time.Second,
		OllamaModel:     "llama3:latest",
	}
	clients := FromConfig(cfg, testDeps())

	require.Len(t, clients, 2)
	assert.Equal(t, "grok", clients[0].Name())
	assert.Equal(t, "anthropic", clients[1].Name())
}
