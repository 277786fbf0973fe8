// Package document extracts paragraph text from the containers a
// document may arrive in. The audit itself only ever sees the
// paragraphs; composition replaces the verifier/Word-document class
// hierarchy of older designs.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anoncheck/anoncheck/internal/model"
	"github.com/anoncheck/anoncheck/internal/worker"
)

// Source produces the paragraph text of one document.
type Source interface {
	// Paragraphs returns the document's paragraphs in order.
	Paragraphs(ctx context.Context) ([]string, error)

	// Kind identifies the container: docx, text, html, remote.
	Kind() string

	// Name is a human-readable document name for reports.
	Name() string
}

// Open picks a Source for the given path or URL. http(s) targets fetch
// remotely; local files dispatch on extension, defaulting to plain
// text.
func Open(target string, cfg *model.Config, limiter *worker.Limiter) (Source, error) {
	if target == "" {
		return nil, fmt.Errorf("empty document target")
	}

	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return NewRemote(target, cfg, limiter), nil
	}

	switch strings.ToLower(filepath.Ext(target)) {
	case ".docx":
		return NewDocx(target), nil
	case ".html", ".htm":
		return NewHTMLFile(target), nil
	default:
		return NewTextFile(target), nil
	}
}
