// Package traverse holds the read-only traversals over a document: the
// console rendering, word counting and one markup visitor per export
// syntax. Each traversal is a model.Visitor; the helper functions run a
// full pass through Document.Accept and return the single result.
package traverse

import (
	"strings"

	"github.com/dshills/docedit/internal/model"
)

// bannerWidth is the width of the '=' rule around the rendered title.
const bannerWidth = 60

// RenderVisitor produces the plain console display form.
type RenderVisitor struct {
	out strings.Builder
}

// NewRenderVisitor creates a render traversal.
func NewRenderVisitor() *RenderVisitor {
	return &RenderVisitor{}
}

// BeginDocument resets the output and writes the title banner.
func (v *RenderVisitor) BeginDocument(doc *model.Document) {
	v.out.Reset()
	rule := strings.Repeat("=", bannerWidth)
	v.out.WriteString(rule + "\n")
	v.out.WriteString("Document: " + doc.Title() + "\n")
	v.out.WriteString(rule + "\n\n")
}

// VisitParagraph implements model.Visitor.
func (v *RenderVisitor) VisitParagraph(p *model.Paragraph) { v.element(p) }

// VisitHeadline implements model.Visitor.
func (v *RenderVisitor) VisitHeadline(h *model.Headline) { v.element(h) }

// VisitImage implements model.Visitor.
func (v *RenderVisitor) VisitImage(img *model.Image) { v.element(img) }

// EndDocument implements model.Visitor.
func (v *RenderVisitor) EndDocument(*model.Document) {}

func (v *RenderVisitor) element(el model.Element) {
	v.out.WriteString(el.Render())
	v.out.WriteString("\n\n")
}

// Output returns the rendering from the last traversal.
func (v *RenderVisitor) Output() string {
	return v.out.String()
}

// Render runs a render traversal over doc.
func Render(doc *model.Document) string {
	v := NewRenderVisitor()
	doc.Accept(v)
	return v.Output()
}
