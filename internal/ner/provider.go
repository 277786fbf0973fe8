// Package ner recognizes named entities in document text through an
// LLM provider. The recognizer is a collaborator of the audit: it only
// lists entities, the verifier decides which of them violate the
// allow-list.
package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anoncheck/anoncheck/internal/model"
)

// Provider defines the interface for entity recognition backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Recognize returns the named entities found in text, deduplicated,
	// in order of first appearance in the provider's answer.
	Recognize(ctx context.Context, text string) ([]string, error)

	// IsAvailable checks if the provider is properly configured and
	// accessible.
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "".
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI/Anthropic.
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.NERConfig to ner.Config.
func ConfigFromModel(cfg model.NERConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// systemPrompt pins the extraction task down for every provider.
const systemPrompt = "You are a named-entity recognizer. You list entities exactly as they appear in the text and never invent entities that are not present."

// BuildPrompt constructs the extraction prompt. The answer must be a
// bare JSON array so parseEntities can read it back.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`List every named entity in the text below: persons, organizations, locations, dates, and any other proper names.

Rules:
1. Reply with a JSON array of strings and nothing else.
2. Copy each entity exactly as written in the text.
3. List each distinct entity once.
4. Reply with [] if the text contains no named entities.

Text:
%s`, text)
}

// parseEntities reads the provider's answer. The JSON array may be
// wrapped in prose or a code fence; everything outside the first
// top-level array is ignored.
func parseEntities(answer string) ([]string, error) {
	start := strings.Index(answer, "[")
	end := strings.LastIndex(answer, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in answer: %q", answer)
	}

	var entities []string
	if err := json.Unmarshal([]byte(answer[start:end+1]), &entities); err != nil {
		return nil, fmt.Errorf("parse entities: %w", err)
	}

	seen := make(map[string]bool, len(entities))
	var unique []string
	for _, entity := range entities {
		entity = strings.TrimSpace(entity)
		if entity == "" || seen[entity] {
			continue
		}
		seen[entity] = true
		unique = append(unique, entity)
	}
	return unique, nil
}
