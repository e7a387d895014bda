package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Format names an export chain.
type Format string

// Supported formats, in menu order.
const (
	FormatHTML       Format = "html"
	FormatStyledHTML Format = "html-css"
	FormatMarkdown   Format = "markdown"
	FormatText       Format = "text"
	FormatPDF        Format = "pdf"
)

var formatOrder = []Format{FormatHTML, FormatStyledHTML, FormatMarkdown, FormatText, FormatPDF}

var formatInfo = map[Format]struct {
	label string
	ext   string
}{
	FormatHTML:       {"HTML", ".html"},
	FormatStyledHTML: {"HTML with CSS", ".html"},
	FormatMarkdown:   {"Markdown", ".md"},
	FormatText:       {"Plain Text", ".txt"},
	FormatPDF:        {"PDF", ".pdf"},
}

var formatAliases = map[string]Format{
	"css":   FormatStyledHTML,
	"md":    FormatMarkdown,
	"txt":   FormatText,
	"plain": FormatText,
}

// Formats lists the supported formats in menu order.
func Formats() []Format {
	return append([]Format(nil), formatOrder...)
}

// ParseFormat accepts a format name, a common alias, or a 1-based menu
// number.
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := formatInfo[Format(key)]; ok {
		return Format(key), nil
	}
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(formatOrder) {
		return formatOrder[n-1], nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Label returns the display name.
func (f Format) Label() string {
	return formatInfo[f].label
}

// Ext returns the default file extension, including the dot.
func (f Format) Ext() string {
	return formatInfo[f].ext
}

// New builds the exporter chain for f on top of the base HTML exporter.
// Options apply to every link of the chain.
func New(f Format, opts ...Option) (Exporter, error) {
	base := NewHTML(opts...)
	switch f {
	case FormatHTML:
		return base, nil
	case FormatStyledHTML:
		styled, err := WithCSS(base, opts...)
		if err != nil {
			return nil, err
		}
		return styled, nil
	case FormatMarkdown:
		return WithMarkdown(base, opts...), nil
	case FormatText:
		return WithPlainText(base, opts...), nil
	case FormatPDF:
		return WithPDF(base, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
