package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// HTMLFile reads a local HTML file and extracts its visible text.
type HTMLFile struct {
	path string
}

// NewHTMLFile creates an HTML file source.
func NewHTMLFile(path string) *HTMLFile {
	return &HTMLFile{path: path}
}

// Kind identifies the container.
func (h *HTMLFile) Kind() string { return "html" }

// Name returns the file name.
func (h *HTMLFile) Name() string { return filepath.Base(h.path) }

// Paragraphs returns the visible text of the document as a single
// paragraph.
func (h *HTMLFile) Paragraphs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil, fmt.Errorf("read html file: %w", err)
	}

	text, err := visibleText(string(data))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}

// visibleText extracts text nodes from HTML, skipping elements that
// never render.
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}
