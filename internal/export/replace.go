package export

import (
	"fmt"
	"strings"

	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/traverse"
)

// replacing is a decorator that ignores the wrapped exporter's output
// and renders the document itself.
type replacing struct {
	inner  Exporter
	format string
	render func(*model.Document) string
	settings
}

func (r *replacing) Content(doc *model.Document) string {
	return r.render(doc)
}

func (r *replacing) Export(doc *model.Document, dest string) error {
	return r.write(r.format, dest, r.render(doc))
}

// Unwrap returns the wrapped exporter.
func (r *replacing) Unwrap() Exporter {
	return r.inner
}

// MarkdownDecorator renders Markdown instead of the wrapped output.
type MarkdownDecorator struct{ replacing }

// WithMarkdown wraps e with a Markdown rendering.
func WithMarkdown(e Exporter, opts ...Option) *MarkdownDecorator {
	return &MarkdownDecorator{replacing{
		inner:    e,
		format:   "Markdown",
		render:   traverse.Markdown,
		settings: newSettings(opts),
	}}
}

// PlainTextDecorator renders plain text instead of the wrapped output.
type PlainTextDecorator struct{ replacing }

// WithPlainText wraps e with a plain-text rendering.
func WithPlainText(e Exporter, opts ...Option) *PlainTextDecorator {
	return &PlainTextDecorator{replacing{
		inner:    e,
		format:   "Plain Text",
		render:   traverse.PlainText,
		settings: newSettings(opts),
	}}
}

// PDFDecorator writes PDF-style text pages. Its Content is a one-line
// summary since the page layout is the file, not a preview.
type PDFDecorator struct {
	inner Exporter
	settings
}

// WithPDF wraps e with the PDF-style page rendering.
func WithPDF(e Exporter, opts ...Option) *PDFDecorator {
	return &PDFDecorator{inner: e, settings: newSettings(opts)}
}

// PDFPath returns dest with ".pdf" appended unless it already ends in
// ".pdf" or ".txt".
func PDFPath(dest string) string {
	if strings.HasSuffix(dest, ".pdf") || strings.HasSuffix(dest, ".txt") {
		return dest
	}
	return dest + ".pdf"
}

// Unwrap returns the wrapped exporter.
func (d *PDFDecorator) Unwrap() Exporter {
	return d.inner
}

// Content returns the document summary.
func (d *PDFDecorator) Content(doc *model.Document) string {
	return fmt.Sprintf("PDF Document: %s (Elements: %d)", doc.Title(), doc.Len())
}

// Export writes the pages to PDFPath(dest).
func (d *PDFDecorator) Export(doc *model.Document, dest string) error {
	if dest == "" {
		return ErrNoDestination
	}
	return d.write("PDF", PDFPath(dest), traverse.PDFText(doc, d.pdf))
}
