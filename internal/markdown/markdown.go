package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Converter renders Markdown bodies to HTML. Safe for reuse across documents
// within a build pass.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter builds the goldmark pipeline used for all content: GitHub
// Flavored Markdown with auto heading IDs. Raw HTML passes through unchanged
// since authors own their content.
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Convert renders a Markdown body (front matter already removed) to HTML.
func (c *Converter) Convert(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
