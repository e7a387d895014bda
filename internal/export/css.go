package export

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/traverse"
)

// DefaultAccent is the heading rule color of styled HTML.
const DefaultAccent = "#007acc"

const styleTemplate = `<style>
    body {
        font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
        max-width: 800px;
        margin: 0 auto;
        padding: 20px;
        line-height: 1.6;
        background-color: #f5f5f5;
    }
    h1, h2, h3 {
        color: #333;
        border-bottom: 2px solid %[1]s;
        padding-bottom: 10px;
    }
    h1 { font-size: 2.5em; }
    h2 { font-size: 2em; }
    h3 { font-size: 1.5em; }
    p {
        color: #555;
        margin: 15px 0;
        text-align: justify;
    }
    img {
        max-width: 100%%;
        height: auto;
        display: block;
        margin: 20px auto;
        border: 1px solid %[2]s;
        border-radius: 4px;
        padding: 5px;
    }
</style>
`

// NormalizeColor parses a hex color with or without the leading '#'
// and returns it as lower-case #rrggbb.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// StyleBlock returns the style element for an accent color. The image
// border uses a light tint of the accent.
func StyleBlock(accent string) (string, error) {
	hex, err := NormalizeColor(accent)
	if err != nil {
		return "", err
	}
	c, _ := colorful.Hex(hex)
	tint := c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.8).Clamped().Hex()
	return fmt.Sprintf(styleTemplate, hex, tint), nil
}

// CSSDecorator adds a style block to the wrapped exporter's HTML.
type CSSDecorator struct {
	inner Exporter
	style string
	settings
}

// WithCSS wraps e so its output carries a style block in the head. It
// fails with ErrInvalidColor when the accent option cannot be parsed.
func WithCSS(e Exporter, opts ...Option) (*CSSDecorator, error) {
	s := newSettings(opts)
	style, err := StyleBlock(s.accent)
	if err != nil {
		return nil, err
	}
	return &CSSDecorator{inner: e, style: style, settings: s}, nil
}

// Content inserts the style block immediately before the first head
// closing tag. Content without one is returned unchanged.
func (d *CSSDecorator) Content(doc *model.Document) string {
	base := d.inner.Content(doc)
	i := strings.Index(base, traverse.HeadClose)
	if i < 0 {
		return base
	}
	return base[:i] + d.style + base[i:]
}

// Unwrap returns the wrapped exporter.
func (d *CSSDecorator) Unwrap() Exporter {
	return d.inner
}

// Export writes the styled page to dest.
func (d *CSSDecorator) Export(doc *model.Document, dest string) error {
	return d.write("HTML with CSS", dest, d.Content(doc))
}
