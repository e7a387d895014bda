package model

import (
	"fmt"
	"strings"
)

// Kind identifies an element variant. Its string form is the "type" tag
// used in serialized documents.
type Kind string

// Element kinds.
const (
	KindParagraph Kind = "Paragraph"
	KindHeadline  Kind = "Headline"
	KindImage     Kind = "Image"
	KindDocument  Kind = "Document"
)

// ParseKind resolves a case-insensitive element kind name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "paragraph":
		return KindParagraph, nil
	case "headline":
		return KindHeadline, nil
	case "image":
		return KindImage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Element is one leaf of document content. The set of implementations is
// closed: *Paragraph, *Headline and *Image.
type Element interface {
	// Kind returns the element's variant tag.
	Kind() Kind

	// Render returns the canonical human-readable form.
	Render() string

	// Accept dispatches to the Visitor method for the element's own kind.
	// Traversals start at Document.Accept; calling this directly skips
	// the document-level Begin/End hooks.
	Accept(v Visitor)

	// Serializable returns a map tagged with "type" plus the element fields.
	Serializable() map[string]any

	// IsComposite reports whether the node can hold children.
	IsComposite() bool

	base() *leaf
}

// leaf carries the ownership link shared by all element kinds.
type leaf struct {
	owner *Document
}

func (l *leaf) base() *leaf { return l }

// IsComposite is false for every leaf.
func (l *leaf) IsComposite() bool { return false }

// Owner returns the document holding the element, or nil.
func Owner(el Element) *Document {
	if el == nil {
		return nil
	}
	return el.base().owner
}

// Paragraph is a block of free text.
type Paragraph struct {
	leaf
	Text string
}

// NewParagraph creates a paragraph.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{Text: text}
}

// Kind implements Element.
func (p *Paragraph) Kind() Kind { return KindParagraph }

// Render returns the raw text.
func (p *Paragraph) Render() string { return p.Text }

// Accept implements Element.
func (p *Paragraph) Accept(v Visitor) { v.VisitParagraph(p) }

// Serializable implements Element.
func (p *Paragraph) Serializable() map[string]any {
	return map[string]any{
		"type": string(KindParagraph),
		"text": p.Text,
	}
}

// Headline levels.
const (
	MinHeadlineLevel = 1
	MaxHeadlineLevel = 3
)

// ClampLevel forces a headline level into [MinHeadlineLevel, MaxHeadlineLevel].
func ClampLevel(level int) int {
	return max(MinHeadlineLevel, min(MaxHeadlineLevel, level))
}

// Headline is a section heading. The level is never stored out of range.
type Headline struct {
	leaf
	Text  string
	level int
}

// NewHeadline creates a headline with the level clamped.
func NewHeadline(text string, level int) *Headline {
	return &Headline{Text: text, level: ClampLevel(level)}
}

// Level returns the heading level (1-3).
func (h *Headline) Level() int { return h.level }

// SetLevel assigns the level, clamping it into range.
func (h *Headline) SetLevel(level int) { h.level = ClampLevel(level) }

// Kind implements Element.
func (h *Headline) Kind() Kind { return KindHeadline }

// Render returns level '#' markers, a space and the text.
func (h *Headline) Render() string {
	return strings.Repeat("#", h.level) + " " + h.Text
}

// Accept implements Element.
func (h *Headline) Accept(v Visitor) { v.VisitHeadline(h) }

// Serializable implements Element.
func (h *Headline) Serializable() map[string]any {
	return map[string]any{
		"type":  string(KindHeadline),
		"text":  h.Text,
		"level": h.level,
	}
}

// Image references an image file. Dimensions are taken as given.
type Image struct {
	leaf
	Filename string
	Width    int
	Height   int
}

// NewImage creates an image element.
func NewImage(filename string, width, height int) *Image {
	return &Image{Filename: filename, Width: width, Height: height}
}

// Kind implements Element.
func (img *Image) Kind() Kind { return KindImage }

// Render returns a bracketed descriptor.
func (img *Image) Render() string {
	return fmt.Sprintf("[Image: %s (%dx%d)]", img.Filename, img.Width, img.Height)
}

// Accept implements Element.
func (img *Image) Accept(v Visitor) { v.VisitImage(img) }

// Serializable implements Element.
func (img *Image) Serializable() map[string]any {
	return map[string]any{
		"type":     string(KindImage),
		"filename": img.Filename,
		"width":    img.Width,
		"height":   img.Height,
	}
}

// Default image size used by NewElement when a dimension is left zero.
const (
	DefaultImageWidth  = 100
	DefaultImageHeight = 100
)

// ElementFields carries the values used by NewElement. Fields irrelevant
// to the requested kind are ignored.
type ElementFields struct {
	Text     string
	Level    int
	Filename string
	Width    int
	Height   int
}

// NewElement builds an element of the given kind. A zero level becomes
// 1 and zero image dimensions become 100.
func NewElement(kind Kind, f ElementFields) (Element, error) {
	switch kind {
	case KindParagraph:
		return NewParagraph(f.Text), nil
	case KindHeadline:
		return NewHeadline(f.Text, f.Level), nil
	case KindImage:
		if f.Width == 0 {
			f.Width = DefaultImageWidth
		}
		if f.Height == 0 {
			f.Height = DefaultImageHeight
		}
		return NewImage(f.Filename, f.Width, f.Height), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
