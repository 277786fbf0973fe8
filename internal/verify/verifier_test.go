package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anoncheck/anoncheck/internal/cache"
	"github.com/anoncheck/anoncheck/internal/model"
)

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewVerifier_Defaults(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}

	// NER is disabled by default
	if verifier.provider != nil {
		t.Error("expected nil provider with NER disabled")
	}
	if verifier.nerCache != nil {
		t.Error("expected nil NER cache with NER disabled")
	}
}

func TestVerifier_CheckDocument_Clean(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	path := writeTestFile(t, "clean.txt", "They are happy. We are fine.")

	report, err := verifier.CheckDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckDocument failed: %v", err)
	}

	if !report.Clean() {
		t.Errorf("expected clean report, got %+v", report)
	}
	if report.Risk.Level != model.RiskNone {
		t.Errorf("expected risk none, got %s", report.Risk.Level)
	}
	if report.Source != "text" {
		t.Errorf("expected source text, got %s", report.Source)
	}
	if report.NER != nil {
		t.Error("expected no NER metadata with NER disabled")
	}
	if report.CheckedAt.IsZero() {
		t.Error("expected CheckedAt to be set")
	}
}

func TestVerifier_CheckDocument_FaultyConjugation(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	path := writeTestFile(t, "faulty.txt", "He are a pronoun.")

	report, err := verifier.CheckDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckDocument failed: %v", err)
	}

	if len(report.FaultyConjugations) != 1 || report.FaultyConjugations[0] != "He are" {
		t.Errorf("expected [He are], got %v", report.FaultyConjugations)
	}
	if report.Risk.Level != model.RiskLow {
		t.Errorf("expected risk low, got %s", report.Risk.Level)
	}
}

func TestVerifier_CheckDocument_DisallowedWord(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	path := writeTestFile(t, "words.txt", "He is a man. They are nearby.")

	report, err := verifier.CheckDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckDocument failed: %v", err)
	}

	if len(report.DisallowedWords) != 1 || report.DisallowedWords[0] != "man" {
		t.Errorf("expected [man], got %v", report.DisallowedWords)
	}
	if report.Risk.Level != model.RiskHigh {
		t.Errorf("expected risk high, got %s", report.Risk.Level)
	}
}

func TestVerifier_CheckDocument_NoSubjectAborts(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	path := writeTestFile(t, "nosubject.txt", "The weather holds.")

	if _, err := verifier.CheckDocument(context.Background(), path); err == nil {
		t.Error("expected error for sentence without pronoun subject")
	}
}

func TestVerifier_CheckDocument_MissingFile(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := verifier.CheckDocument(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

// stubProvider implements ner.Provider
type stubProvider struct {
	entities []string
	err      error
	calls    int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Recognize(ctx context.Context, text string) ([]string, error) {
	p.calls++
	return p.entities, p.err
}

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func TestVerifier_CheckDocument_Entities(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	stub := &stubProvider{entities: []string{"Maria", "Monday"}}
	verifier.provider = stub
	verifier.nerCache = cache.NewMemoryCache(time.Minute, time.Minute)

	path := writeTestFile(t, "entities.txt", "They are busy on Monday. We will be back.")

	report, err := verifier.CheckDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckDocument failed: %v", err)
	}

	// Monday is allow-listed, Maria is not
	if len(report.NamedEntities) != 1 || report.NamedEntities[0] != "Maria" {
		t.Errorf("expected [Maria], got %v", report.NamedEntities)
	}
	if report.NER == nil {
		t.Fatal("expected NER metadata")
	}
	if report.NER.Provider != "stub" {
		t.Errorf("expected provider stub, got %s", report.NER.Provider)
	}
	if report.NER.FromCache {
		t.Error("first check should not hit the cache")
	}
	if report.NER.Entities != 2 {
		t.Errorf("expected 2 recognized entities, got %d", report.NER.Entities)
	}
	if report.Risk.Level != model.RiskHigh {
		t.Errorf("expected risk high, got %s", report.Risk.Level)
	}

	// Second check of the same text comes from the cache
	report2, err := verifier.CheckDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("second CheckDocument failed: %v", err)
	}
	if !report2.NER.FromCache {
		t.Error("second check should hit the cache")
	}
	if stub.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", stub.calls)
	}
}

func TestVerifier_CheckDocument_EntityProviderError(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	verifier.provider = &stubProvider{err: errors.New("provider down")}

	path := writeTestFile(t, "entities.txt", "They are busy.")

	if _, err := verifier.CheckDocument(context.Background(), path); err == nil {
		t.Error("expected error when provider fails")
	}
}

func TestFindDisallowedWords(t *testing.T) {
	verifier, err := NewVerifier(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	// Punctuation is trimmed, case preserved in the finding, duplicates collapsed
	hits := verifier.findDisallowedWords("Her mother, the Queen! A mother again.")

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %v", hits)
	}
	if hits[0] != "mother" || hits[1] != "Queen" {
		t.Errorf("expected [mother Queen], got %v", hits)
	}
}

func TestSummarizeRisk_Levels(t *testing.T) {
	tests := []struct {
		name   string
		report model.Report
		want   model.RiskLevel
	}{
		{"clean", model.Report{}, model.RiskNone},
		{"one conjugation", model.Report{FaultyConjugations: []string{"he are"}}, model.RiskLow},
		{"many conjugations", model.Report{FaultyConjugations: []string{"a", "b", "c"}}, model.RiskMedium},
		{"disallowed word", model.Report{DisallowedWords: []string{"mother"}}, model.RiskHigh},
		{"entity", model.Report{NamedEntities: []string{"Maria"}}, model.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := summarizeRisk(&tt.report)
			if risk.Level != tt.want {
				t.Errorf("expected %s, got %s", tt.want, risk.Level)
			}
		})
	}
}

func TestSummarizeRisk_Signals(t *testing.T) {
	report := model.Report{
		FaultyConjugations: []string{"he are"},
		NER:                &model.NERMeta{Provider: "stub"},
	}

	risk := summarizeRisk(&report)

	// One signal per executed check
	if len(risk.Signals) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(risk.Signals))
	}
	if risk.Findings != 1 {
		t.Errorf("expected 1 finding, got %d", risk.Findings)
	}
	if risk.Signals[0].Check != model.CheckConjugation || risk.Signals[0].Severity != model.SeverityWarning {
		t.Errorf("unexpected conjugation signal %+v", risk.Signals[0])
	}
	if risk.Signals[1].Severity != model.SeverityInfo {
		t.Errorf("expected info word-list signal, got %+v", risk.Signals[1])
	}
}

func TestSummarizeRisk_NoEntitySignalWithoutNER(t *testing.T) {
	risk := summarizeRisk(&model.Report{})
	if len(risk.Signals) != 2 {
		t.Fatalf("expected 2 signals without NER, got %d", len(risk.Signals))
	}
}
