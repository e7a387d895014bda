package model

// Visitor is a read-only traversal over a Document.
//
// Document.Accept calls BeginDocument first, then one Visit method per
// element in sequence order, then EndDocument. Implementations reset
// their accumulators in BeginDocument so repeated traversals of an
// unchanged document yield identical results.
type Visitor interface {
	BeginDocument(doc *Document)
	VisitParagraph(p *Paragraph)
	VisitHeadline(h *Headline)
	VisitImage(img *Image)
	EndDocument(doc *Document)
}

// BaseVisitor provides no-op implementations of every Visitor method.
// Embed it to implement only the cases a traversal cares about.
type BaseVisitor struct{}

// BeginDocument implements Visitor.
func (BaseVisitor) BeginDocument(*Document) {}

// VisitParagraph implements Visitor.
func (BaseVisitor) VisitParagraph(*Paragraph) {}

// VisitHeadline implements Visitor.
func (BaseVisitor) VisitHeadline(*Headline) {}

// VisitImage implements Visitor.
func (BaseVisitor) VisitImage(*Image) {}

// EndDocument implements Visitor.
func (BaseVisitor) EndDocument(*Document) {}
