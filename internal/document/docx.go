package document

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Docx reads the paragraphs of a Word document. A .docx file is a zip
// container; paragraph text lives in word/document.xml as w:t runs
// grouped under w:p elements.
type Docx struct {
	path string
}

// NewDocx creates a Word document source.
func NewDocx(path string) *Docx {
	return &Docx{path: path}
}

// Kind identifies the container.
func (d *Docx) Kind() string { return "docx" }

// Name returns the file name.
func (d *Docx) Name() string { return filepath.Base(d.path) }

// Paragraphs extracts the document's paragraph text in order. Empty
// paragraphs are dropped.
func (d *Docx) Paragraphs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(d.path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer func() { _ = archive.Close() }()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		reader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer func() { _ = reader.Close() }()
		return extractParagraphs(reader)
	}

	return nil, fmt.Errorf("open docx: word/document.xml not found in %s", d.path)
}

// extractParagraphs streams document.xml, collecting character data of
// w:t runs into one string per w:p element.
func extractParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteString(" ")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
