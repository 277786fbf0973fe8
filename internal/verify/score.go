package verify

import (
	"fmt"

	"github.com/anoncheck/anoncheck/internal/model"
)

// summarizeRisk folds the findings into a risk level with one signal
// per executed check.
func summarizeRisk(report *model.Report) model.Risk {
	var signals []model.Signal

	signals = append(signals, conjugationSignal(report.FaultyConjugations))
	signals = append(signals, wordListSignal(report.DisallowedWords))
	if report.NER != nil {
		signals = append(signals, entitySignal(report.NamedEntities))
	}

	total := len(report.FaultyConjugations) + len(report.DisallowedWords) + len(report.NamedEntities)

	return model.Risk{
		Level:    riskLevel(report, total),
		Findings: total,
		Signals:  signals,
	}
}

// riskLevel classifies the report. Word-list and entity hits expose
// identity directly; conjugation faults only suggest a rewrite left
// seams behind.
func riskLevel(report *model.Report, total int) model.RiskLevel {
	switch {
	case total == 0:
		return model.RiskNone
	case len(report.DisallowedWords) > 0 || len(report.NamedEntities) > 0:
		return model.RiskHigh
	case len(report.FaultyConjugations) >= 3:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func conjugationSignal(faulty []string) model.Signal {
	if len(faulty) == 0 {
		return model.Signal{
			Check:       model.CheckConjugation,
			Severity:    model.SeverityInfo,
			Description: "All subject-verb pairs agree",
		}
	}

	return model.Signal{
		Check:       model.CheckConjugation,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("%d subject-verb pairs do not agree", len(faulty)),
		Findings:    faulty,
	}
}

func wordListSignal(words []string) model.Signal {
	if len(words) == 0 {
		return model.Signal{
			Check:       model.CheckWordList,
			Severity:    model.SeverityInfo,
			Description: "No disallowed words found",
		}
	}

	return model.Signal{
		Check:       model.CheckWordList,
		Severity:    model.SeverityCritical,
		Description: fmt.Sprintf("%d disallowed words found", len(words)),
		Findings:    words,
	}
}

func entitySignal(entities []string) model.Signal {
	if len(entities) == 0 {
		return model.Signal{
			Check:       model.CheckEntities,
			Severity:    model.SeverityInfo,
			Description: "No named entities outside the allow-list",
		}
	}

	return model.Signal{
		Check:       model.CheckEntities,
		Severity:    model.SeverityCritical,
		Description: fmt.Sprintf("%d named entities outside the allow-list", len(entities)),
		Findings:    entities,
	}
}
