package verify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anoncheck/anoncheck/internal/model"
)

// Renderer writes reports to files and the terminal.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the report as a Markdown document.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown renders the report body.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Anonymity Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **Document**: %s\n", report.Document)
	fmt.Fprintf(&b, "- **Source**: %s\n", report.Source)
	fmt.Fprintf(&b, "- **Checked**: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Risk**: %s (%d findings)\n\n", report.Risk.Level, report.Risk.Findings)

	renderFindingSection(&b, "Faulty Conjugations", report.FaultyConjugations,
		"All subject-verb pairs agree.")
	renderFindingSection(&b, "Disallowed Words", report.DisallowedWords,
		"No disallowed words found.")

	if report.NER != nil {
		b.WriteString("## Named Entities\n\n")
		if len(report.NamedEntities) == 0 {
			b.WriteString("No named entities outside the allow-list.\n")
		} else {
			for _, entity := range report.NamedEntities {
				fmt.Fprintf(&b, "- `%s`\n", entity)
			}
		}
		fmt.Fprintf(&b, "\nRecognized by %s", report.NER.Provider)
		if report.NER.Model != "" {
			fmt.Fprintf(&b, " (%s)", report.NER.Model)
		}
		if report.NER.FromCache {
			b.WriteString(", cached")
		}
		b.WriteString(".\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by anoncheck.\n")
	}

	return b.String()
}

func renderFindingSection(b *strings.Builder, title string, findings []string, cleanLine string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(findings) == 0 {
		b.WriteString(cleanLine + "\n\n")
		return
	}
	for _, finding := range findings {
		fmt.Fprintf(b, "- `%s`\n", finding)
	}
	b.WriteString("\n")
}

// RenderSummary prints a one-screen summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s (%s)\n", report.Subject, report.Document)

	if report.Clean() {
		fmt.Println("  ✓ clean: no findings")
		return
	}

	fmt.Printf("  risk: %s, %d findings\n", report.Risk.Level, report.Risk.Findings)

	printFindings("faulty conjugations", report.FaultyConjugations)
	printFindings("disallowed words", report.DisallowedWords)
	printFindings("named entities", report.NamedEntities)
}

func printFindings(label string, findings []string) {
	if len(findings) == 0 {
		return
	}
	fmt.Printf("  ✗ %s (%d):\n", label, len(findings))
	for _, finding := range findings {
		fmt.Printf("      %s\n", finding)
	}
}
