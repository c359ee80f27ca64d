// Package llm talks to hosted language models. Callers depend on Client;
// the concrete providers are chosen from configuration by New.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIBaseURL = "https://api.openai.com"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultTimeout       = 60 * time.Second
)

// ErrEmptyCompletion is returned when the provider answered without any text
var ErrEmptyCompletion = errors.New("empty upstream completion")

// Request is a single system + user exchange
type Request struct {
	System      string
	User        string
	Temperature float64
	// JSON asks the provider for a JSON object when it supports that mode
	JSON bool
}

// Client performs one completion per call. Implementations make exactly one
// outbound request and never retry; retry or rate limiting belongs in a
// decorator wrapping the Client.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider
type Config struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// New builds the Client named by cfg.Provider
func New(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg)
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// ClientFunc adapts a function to the Client interface
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
