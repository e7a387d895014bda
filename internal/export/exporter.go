// Package export turns documents into files.
//
// The base exporter renders HTML. Decorators wrap any exporter and
// either augment its output (WithCSS) or ignore it and produce an
// independent rendering (WithMarkdown, WithPlainText, WithPDF). Chains
// for the user-facing formats are built by New.
package export

import (
	"errors"
	"fmt"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/traverse"
	"github.com/dshills/docedit/internal/vfs"
)

// Errors returned by exporters.
var (
	ErrInvalidColor  = errors.New("invalid accent color")
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNoDestination = errors.New("no export destination")
)

// Exporter renders a document and writes it to a destination.
type Exporter interface {
	// Content returns the rendering without writing anything.
	Content(doc *model.Document) string

	// Export writes the rendering to dest.
	Export(doc *model.Document, dest string) error
}

// Writer stores exported bytes at path.
type Writer func(path string, data []byte) error

// FileWriter returns a Writer backed by fsys.
func FileWriter(fsys vfs.FS) Writer {
	return func(path string, data []byte) error {
		return fsys.WriteFile(path, data, 0o644)
	}
}

// settings are shared by every exporter in a chain.
type settings struct {
	writer Writer
	logger *logging.Logger
	accent string
	pdf    traverse.PDFOptions
}

func newSettings(opts []Option) settings {
	s := settings{
		writer: FileWriter(vfs.NewOSFS()),
		logger: logging.Nop(),
		accent: DefaultAccent,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures an exporter.
type Option func(*settings)

// WithWriter replaces the file writer.
func WithWriter(w Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.writer = w
		}
	}
}

// WithLogger sets the logger that records completed exports.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAccent sets the CSS accent color. Only WithCSS reads it.
func WithAccent(color string) Option {
	return func(s *settings) {
		s.accent = color
	}
}

// WithPageLayout sets the PDF-style page layout. Only WithPDF reads it.
func WithPageLayout(opts traverse.PDFOptions) Option {
	return func(s *settings) {
		s.pdf = opts
	}
}

func (s settings) write(format, dest, content string) error {
	if dest == "" {
		return ErrNoDestination
	}
	if err := s.writer(dest, []byte(content)); err != nil {
		s.logger.Error("Export to %s failed: %s: %v", format, dest, err)
		return fmt.Errorf("export %s to %s: %w", format, dest, err)
	}
	s.logger.Info("Document exported to %s: %s", format, dest)
	return nil
}

// HTMLExporter is the base exporter. It writes a plain HTML page.
type HTMLExporter struct {
	settings
}

// NewHTML creates the base HTML exporter.
func NewHTML(opts ...Option) *HTMLExporter {
	return &HTMLExporter{settings: newSettings(opts)}
}

// Content returns the HTML page.
func (e *HTMLExporter) Content(doc *model.Document) string {
	return traverse.HTML(doc)
}

// Export writes the HTML page to dest.
func (e *HTMLExporter) Export(doc *model.Document, dest string) error {
	return e.write("HTML", dest, e.Content(doc))
}
