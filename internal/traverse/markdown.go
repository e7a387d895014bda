package traverse

import (
	"strings"

	"github.com/dshills/docedit/internal/model"
)

// MarkdownVisitor produces Markdown. The document title is the only
// level-one heading; element headlines are shifted down one level.
type MarkdownVisitor struct {
	out strings.Builder
}

// NewMarkdownVisitor creates a Markdown traversal.
func NewMarkdownVisitor() *MarkdownVisitor {
	return &MarkdownVisitor{}
}

// BeginDocument resets the output and writes the title heading.
func (v *MarkdownVisitor) BeginDocument(doc *model.Document) {
	v.out.Reset()
	v.block("# " + doc.Title())
}

// VisitParagraph implements model.Visitor.
func (v *MarkdownVisitor) VisitParagraph(p *model.Paragraph) {
	v.block(p.Text)
}

// VisitHeadline implements model.Visitor.
func (v *MarkdownVisitor) VisitHeadline(h *model.Headline) {
	v.block(strings.Repeat("#", h.Level()+1) + " " + h.Text)
}

// VisitImage implements model.Visitor.
func (v *MarkdownVisitor) VisitImage(img *model.Image) {
	v.block("![" + img.Filename + "](" + img.Filename + ")")
}

// EndDocument implements model.Visitor.
func (v *MarkdownVisitor) EndDocument(*model.Document) {}

func (v *MarkdownVisitor) block(s string) {
	v.out.WriteString(s)
	v.out.WriteString("\n\n")
}

// Markdown returns the text from the last traversal.
func (v *MarkdownVisitor) Markdown() string {
	return v.out.String()
}

// Markdown runs a Markdown traversal over doc.
func Markdown(doc *model.Document) string {
	v := NewMarkdownVisitor()
	doc.Accept(v)
	return v.Markdown()
}
