// Package orchestrator routes user messages across the configured chat
// providers with ordered, sticky fallback. The first provider to answer
// becomes the preferred one for subsequent calls; when every provider is
// unavailable or failing, a local keyword responder produces the reply so
// the caller always gets text.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aura/internal/cache"
	"aura/internal/config"
	"aura/internal/provider"
)

// LocalResponder is the pseudo-provider name reported when the keyword
// fallback produced the reply.
const LocalResponder = "local"

// Orchestrator owns the provider preference state. The preferred pointer is
// instance state behind a mutex, never a package global; the worst a race can
// cost is one extra retry.
type Orchestrator struct {
	mu      sync.Mutex
	clients []provider.Client
	current string

	cache    sync.Map
	cacheTTL time.Duration
	now      func() time.Time

	logger *slog.Logger
}

// New creates an Orchestrator over clients in their configured preference
// order. The first client is the initial preferred provider.
func New(clients []provider.Client, cacheTTL time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		clients:  clients,
		cacheTTL: cacheTTL,
		now:      time.Now,
		logger:   logger,
	}
	if len(clients) > 0 {
		o.current = clients[0].Name()
	}
	return o
}

// Current returns the currently preferred provider name.
func (o *Orchestrator) Current() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Available returns the names of providers with a credential present.
func (o *Orchestrator) Available() []string {
	names := []string{}
	for _, c := range o.clients {
		if c.Available() {
			names = append(names, c.Name())
		}
	}
	return names
}

// GetResponse answers the message and reports which provider produced the
// text. It never returns an error: exhaustion of all providers falls through
// to the local keyword responder.
func (o *Orchestrator) GetResponse(ctx context.Context, message, mode string) (text, apiUsed string) {
	key := cache.Key(mode, message)
	if val, ok := o.cache.Load(key); ok {
		entry := val.(cache.Entry)
		if !entry.Expired(o.cacheTTL, o.now()) {
			o.logger.Info("cache hit", "key", key[:16])
			return entry.Response, entry.Provider
		}
		o.cache.Delete(key)
	}

	system := systemPrompt(mode)
	preferred := o.Current()

	// Preferred provider first.
	if c := o.client(preferred); c != nil && c.Available() {
		reply, err := c.Chat(ctx, system, message)
		if err == nil {
			o.store(key, reply, c.Name())
			return reply, c.Name()
		}
		o.logger.Warn("preferred provider failed", "provider", c.Name(), "error", err)
	}

	// Remaining providers in their declared order.
	for _, c := range o.clients {
		if c.Name() == preferred || !c.Available() {
			continue
		}
		reply, err := c.Chat(ctx, system, message)
		if err != nil {
			o.logger.Warn("provider failed", "provider", c.Name(), "error", err)
			continue
		}
		// Sticky fallback: future calls start here.
		o.mu.Lock()
		o.current = c.Name()
		o.mu.Unlock()
		o.logger.Info("preferred provider updated", "provider", c.Name())
		o.store(key, reply, c.Name())
		return reply, c.Name()
	}

	o.logger.Info("all providers exhausted, using local responder")
	return localReply(message), LocalResponder
}

func (o *Orchestrator) client(name string) provider.Client {
	for _, c := range o.clients {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (o *Orchestrator) store(key, response, providerName string) {
	o.cache.Store(key, cache.Entry{
		Response:  response,
		Provider:  providerName,
		Timestamp: o.now(),
	})
}

// systemPrompt returns the instruction sent to providers for a given
// assistant mode.
func systemPrompt(mode string) string {
	base := "You are AURA, a friendly voice assistant. Keep replies short and conversational."
	switch mode {
	case config.ModeStudy:
		return base + " The user is studying: favor clear explanations and memorable summaries."
	case config.ModeWork:
		return base + " The user is in a focus session: be brief and keep them on task."
	case config.ModeRelax:
		return base + " The user is unwinding: keep the tone calm and low-pressure."
	default:
		return base
	}
}
