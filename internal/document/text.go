package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextFile reads a plain text or markdown file. Paragraphs are blocks
// separated by blank lines.
type TextFile struct {
	path string
}

// NewTextFile creates a text file source.
func NewTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

// Kind identifies the container.
func (t *TextFile) Kind() string { return "text" }

// Name returns the file name.
func (t *TextFile) Name() string { return filepath.Base(t.path) }

// Paragraphs reads the file and splits it on blank lines.
func (t *TextFile) Paragraphs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	return splitParagraphs(string(data)), nil
}

// splitParagraphs splits text on blank lines, normalizing line endings
// and dropping empty blocks.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}
