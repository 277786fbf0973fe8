package model

import "time"

// Report represents the complete anonymity audit of a single document
type Report struct {
	Document  string    `json:"document"`   // Path or URL that was checked
	Subject   string    `json:"subject"`    // Human-readable document name
	CheckedAt time.Time `json:"checked_at"` // When the check ran
	Source    string    `json:"source"`     // Source kind: docx, text, html, remote

	FaultyConjugations []string `json:"faulty_conjugations"` // Subject-verb phrases that do not agree
	DisallowedWords    []string `json:"disallowed_words"`    // Word-list hits
	NamedEntities      []string `json:"named_entities"`      // Entities outside the allow-list

	NER *NERMeta `json:"ner,omitempty"` // Present only when entity recognition ran

	Risk Risk `json:"risk"` // Aggregated risk summary
}

// Clean reports true when no check produced a finding
func (r *Report) Clean() bool {
	return len(r.FaultyConjugations) == 0 &&
		len(r.DisallowedWords) == 0 &&
		len(r.NamedEntities) == 0
}

// NERMeta records which recognizer produced the entity findings
type NERMeta struct {
	Provider  string `json:"provider"`         // openai, anthropic, ollama
	Model     string `json:"model,omitempty"`  // Model name
	FromCache bool   `json:"from_cache"`       // Whether results came from the NER cache
	Entities  int    `json:"entities"`         // Total entities recognized (before allow-list diff)
}

// Risk summarizes the findings into a single level plus per-check signals
type Risk struct {
	Level    RiskLevel `json:"level"`
	Findings int       `json:"findings"` // Total findings across all checks
	Signals  []Signal  `json:"signals"`
}

// RiskLevel classifies how likely the document is to leak identity
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Signal is a per-check diagnostic with the data behind it
type Signal struct {
	Check       CheckKind `json:"check"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Findings    []string  `json:"findings,omitempty"`
}

// CheckKind names one of the three audit checks
type CheckKind string

const (
	CheckConjugation CheckKind = "conjugation"
	CheckWordList    CheckKind = "word_list"
	CheckEntities    CheckKind = "named_entities"
)

// Severity indicates the importance of a signal
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)
