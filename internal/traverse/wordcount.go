package traverse

import (
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/wordcount"
)

// WordCountVisitor sums the words of every textual element using an
// injected policy. Images contribute nothing.
type WordCountVisitor struct {
	model.BaseVisitor
	policy wordcount.Policy
	count  int
}

// NewWordCountVisitor creates a counting traversal. A nil policy selects
// the whitespace default.
func NewWordCountVisitor(policy wordcount.Policy) *WordCountVisitor {
	if policy == nil {
		policy = wordcount.Default()
	}
	return &WordCountVisitor{policy: policy}
}

// BeginDocument resets the running total.
func (v *WordCountVisitor) BeginDocument(*model.Document) {
	v.count = 0
}

// VisitParagraph implements model.Visitor.
func (v *WordCountVisitor) VisitParagraph(p *model.Paragraph) {
	v.count += v.policy.CountWords(p.Text)
}

// VisitHeadline implements model.Visitor.
func (v *WordCountVisitor) VisitHeadline(h *model.Headline) {
	v.count += v.policy.CountWords(h.Text)
}

// Count returns the total from the last traversal.
func (v *WordCountVisitor) Count() int {
	return v.count
}

// CountWords runs a word-count traversal over doc.
func CountWords(doc *model.Document, policy wordcount.Policy) int {
	v := NewWordCountVisitor(policy)
	doc.Accept(v)
	return v.Count()
}
