package ner

import (
	"fmt"
	"strings"
)

// NewProvider creates an entity recognition provider from configuration.
// An empty provider name disables recognition and returns nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown NER provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
