// Copyright 2025 Quillstone Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// ProviderOpenAI tags configurations that target OpenAI-compatible APIs.
const ProviderOpenAI = "openai"

// Config holds configuration for AI service clients.
type Config struct {
	// Provider is the provider tag, e.g. "openai".
	Provider string

	// Version is the adapter protocol version tag.
	Version string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "BAAI/bge-base-en", "text-embedding-3-small"
	EmbeddingModel string

	// ChatHost is the base URL for the chat completion API.
	// Empty means the provider's default endpoint.
	ChatHost string

	// ChatModel is the model identifier for chat completions.
	ChatModel string

	// Token is the API credential. Chat completion requires one; embedding
	// against local services falls back to a placeholder when empty.
	Token string

	// Temperature is the sampling temperature for completions.
	Temperature float64

	// TopP is the nucleus sampling parameter for completions.
	TopP float64

	// Stream enables streaming completion; the adapter accumulates the
	// streamed deltas and still returns the full text.
	Stream bool

	// MaxTokens caps the completion length.
	MaxTokens int

	// Functions is the optional function-calling schema list forwarded with
	// each completion request.
	Functions []FunctionSchema
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatHost sets the chat completion host URL.
func WithChatHost(host string) ConfigOption {
	return func(c *Config) {
		c.ChatHost = host
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithToken sets the API credential.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTemperature sets the completion sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(topP float64) ConfigOption {
	return func(c *Config) {
		c.TopP = topP
	}
}

// WithStream enables or disables streaming completions.
func WithStream(stream bool) ConfigOption {
	return func(c *Config) {
		c.Stream = stream
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(max int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = max
	}
}

// WithFunctions sets the function-calling schema list.
func WithFunctions(functions []FunctionSchema) ConfigOption {
	return func(c *Config) {
		c.Functions = functions
	}
}

// DefaultConfig returns a Config with the adapter's stock defaults:
// gpt-3.5-turbo at temperature 0.7, top-p 1.0, 256 max tokens, no streaming,
// and a local OpenAI-compatible embedding endpoint.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		Version:        "0.1.0",
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "BAAI/bge-base-en",
		ChatModel:      "gpt-3.5-turbo",
		Temperature:    0.7,
		TopP:           1.0,
		Stream:         false,
		MaxTokens:      256,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the /v1
// suffix to hosts if missing, which OpenAI-compatible APIs (Ollama, LocalAI,
// vLLM) require.
func (c *Config) Normalize() {
	c.EmbeddingHost = normalizeHost(c.EmbeddingHost)
	c.ChatHost = normalizeHost(c.ChatHost)
}

func normalizeHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Provider == "" {
		return errors.New("ai config: Provider is required")
	}
	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return errors.New("ai config: TopP must be in (0, 1]")
	}
	if c.MaxTokens < 1 {
		return errors.New("ai config: MaxTokens must be at least 1")
	}
	return nil
}
