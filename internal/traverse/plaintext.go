package traverse

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/docedit/internal/model"
)

var upper = cases.Upper(language.Und)

// underline returns a rule of ch as long as s is in user-perceived
// characters.
func underline(s string, ch string) string {
	return strings.Repeat(ch, uniseg.GraphemeClusterCount(s))
}

// PlainTextVisitor produces unformatted text with underlined headings.
type PlainTextVisitor struct {
	out strings.Builder
}

// NewPlainTextVisitor creates a plain-text traversal.
func NewPlainTextVisitor() *PlainTextVisitor {
	return &PlainTextVisitor{}
}

// BeginDocument resets the output and writes the underlined title.
func (v *PlainTextVisitor) BeginDocument(doc *model.Document) {
	v.out.Reset()
	title := upper.String(doc.Title())
	v.out.WriteString(title + "\n")
	v.out.WriteString(underline(title, "=") + "\n\n")
}

// VisitParagraph implements model.Visitor.
func (v *PlainTextVisitor) VisitParagraph(p *model.Paragraph) {
	v.out.WriteString(p.Text + "\n\n")
}

// VisitHeadline implements model.Visitor.
func (v *PlainTextVisitor) VisitHeadline(h *model.Headline) {
	text := upper.String(h.Text)
	v.out.WriteString("\n" + text + "\n")
	v.out.WriteString(underline(text, "-") + "\n\n")
}

// VisitImage implements model.Visitor.
func (v *PlainTextVisitor) VisitImage(img *model.Image) {
	fmt.Fprintf(&v.out, "[IMAGE: %s (%dx%d)]\n\n", img.Filename, img.Width, img.Height)
}

// EndDocument implements model.Visitor.
func (v *PlainTextVisitor) EndDocument(*model.Document) {}

// Text returns the text from the last traversal.
func (v *PlainTextVisitor) Text() string {
	return v.out.String()
}

// PlainText runs a plain-text traversal over doc.
func PlainText(doc *model.Document) string {
	v := NewPlainTextVisitor()
	doc.Accept(v)
	return v.Text()
}
