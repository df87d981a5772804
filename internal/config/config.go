// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider identifiers, in their default preference order.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGrok      = "grok"
	ProviderOllama    = "ollama"
)

// Assistant modes the client can switch between.
const (
	ModeGeneral = "general"
	ModeStudy   = "study"
	ModeWork    = "work"
	ModeRelax   = "relax"
)

// Session restart policies for "start session" while a countdown is live.
const (
	RestartPolicyReject  = "reject"
	RestartPolicyRestart = "restart"
)

// DefaultUserID is used when a request carries no user identifier.
const DefaultUserID = "default"

// Config holds all application configuration.
type Config struct {
	Port                 string
	Debug                bool
	DBPath               string
	ProviderOrder        []string
	ProviderTimeout      time.Duration
	OllamaHost           string
	OllamaModel          string // Model specification in format "model:version" (e.g., "llama3:latest")
	SessionDuration      time.Duration
	SessionRestartPolicy string
	CacheTTL             time.Duration
	TimerSweepInterval   time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Debug:                getEnvBool("DEBUG", false),
		DBPath:               getEnv("DB_PATH", "./data/aura.db"),
		ProviderOrder:        splitList(getEnv("PROVIDER_ORDER", "anthropic,openai,grok,ollama")),
		ProviderTimeout:      time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 60)) * time.Second,
		OllamaHost:           getEnv("OLLAMA_HOST", ""),
		OllamaModel:          getEnv("OLLAMA_MODEL", "llama3:latest"),
		SessionDuration:      time.Duration(getEnvInt("SESSION_DURATION_SECONDS", 2400)) * time.Second,
		SessionRestartPolicy: getEnv("SESSION_RESTART_POLICY", RestartPolicyReject),
		CacheTTL:             time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		TimerSweepInterval:   time.Duration(getEnvInt("TIMER_SWEEP_SECONDS", 600)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if len(c.ProviderOrder) == 0 {
		return fmt.Errorf("PROVIDER_ORDER cannot be empty")
	}
	known := map[string]bool{
		ProviderAnthropic: true,
		ProviderOpenAI:    true,
		ProviderGrok:      true,
		ProviderOllama:    true,
	}
	for _, p := range c.ProviderOrder {
		if !known[p] {
			return fmt.Errorf("unknown provider %q in PROVIDER_ORDER", p)
		}
	}
	switch c.SessionRestartPolicy {
	case RestartPolicyReject, RestartPolicyRestart:
	default:
		return fmt.Errorf("SESSION_RESTART_POLICY must be %q or %q", RestartPolicyReject, RestartPolicyRestart)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT_SECONDS must be > 0")
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("SESSION_DURATION_SECONDS must be > 0")
	}
	return nil
}

// ValidMode reports whether name is a recognized assistant mode.
func ValidMode(name string) bool {
	switch name {
	case ModeGeneral, ModeStudy, ModeWork, ModeRelax:
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
