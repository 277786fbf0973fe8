package ner

import (
	"strings"
	"testing"
)

func TestBuildPrompt_ContainsTextAndRules(t *testing.T) {
	prompt := BuildPrompt("Maria visited Boston.")

	if !strings.Contains(prompt, "Maria visited Boston.") {
		t.Error("expected prompt to embed the document text")
	}
	if !strings.Contains(prompt, "JSON array") {
		t.Error("expected prompt to demand a JSON array answer")
	}
}

func TestParseEntities_BareArray(t *testing.T) {
	entities, err := parseEntities(`["Maria", "Boston"]`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(entities) != 2 || entities[0] != "Maria" || entities[1] != "Boston" {
		t.Errorf("unexpected entities %v", entities)
	}
}

func TestParseEntities_WrappedInProse(t *testing.T) {
	answer := "Here are the entities:\n```json\n[\"Maria\", \"Boston\"]\n```\nLet me know if you need more."

	entities, err := parseEntities(answer)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entities) != 2 {
		t.Errorf("expected 2 entities, got %v", entities)
	}
}

func TestParseEntities_Deduplicates(t *testing.T) {
	entities, err := parseEntities(`["Maria", "Maria", "  Boston  ", ""]`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(entities) != 2 {
		t.Fatalf("expected 2 unique entities, got %v", entities)
	}
	if entities[1] != "Boston" {
		t.Errorf("expected entities to be trimmed, got %v", entities)
	}
}

func TestParseEntities_EmptyArray(t *testing.T) {
	entities, err := parseEntities(`[]`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entities) != 0 {
		t.Errorf("expected no entities, got %v", entities)
	}
}

func TestParseEntities_NoArray(t *testing.T) {
	if _, err := parseEntities("I could not find any entities."); err == nil {
		t.Error("expected error when the answer has no JSON array")
	}
	if _, err := parseEntities(`[not valid json]`); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestNewProvider_Dispatch(t *testing.T) {
	// Disabled
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil || provider != nil {
		t.Errorf("expected nil provider for empty name, got %v / %v", provider, err)
	}

	// Unknown
	if _, err := NewProvider(Config{Provider: "spacy"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	// Missing API keys
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}
	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("expected error for anthropic without API key")
	}

	// Ollama needs no key
	provider, err = NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("expected no error for ollama, got %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("unexpected provider name %s", provider.Name())
	}
}
