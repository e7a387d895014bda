package traverse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/docedit/internal/model"
)

// Defaults for the PDF-style page layout.
const (
	DefaultPageWidth = 72
	DefaultPageLines = 56

	minPageWidth = 20
	minPageLines = 8
	footerLines  = 2
)

// PageBreak separates pages in PDF-style output.
const PageBreak = "\f\n"

// PDFOptions controls the PDF-style page layout.
type PDFOptions struct {
	// Width is the line width in terminal cells.
	Width int
	// PageLines is the number of lines per page including the footer.
	PageLines int
}

func (o PDFOptions) normalize() PDFOptions {
	if o.Width <= 0 {
		o.Width = DefaultPageWidth
	}
	if o.PageLines <= 0 {
		o.PageLines = DefaultPageLines
	}
	o.Width = max(o.Width, minPageWidth)
	o.PageLines = max(o.PageLines, minPageLines)
	return o
}

// PDFVisitor lays a document out as fixed-width text pages: a boxed
// title, numbered section headings, wrapped paragraphs, figure
// placeholders, and a footer on every page.
type PDFVisitor struct {
	opts     PDFOptions
	lines    []string
	sections [model.MaxHeadlineLevel]int
	figures  int
	out      string
}

// NewPDFVisitor creates a PDF-style traversal.
func NewPDFVisitor(opts PDFOptions) *PDFVisitor {
	return &PDFVisitor{opts: opts.normalize()}
}

// BeginDocument resets the layout and writes the title box.
func (v *PDFVisitor) BeginDocument(doc *model.Document) {
	v.lines = v.lines[:0]
	v.sections = [model.MaxHeadlineLevel]int{}
	v.figures = 0
	v.out = ""

	inner := v.opts.Width - 4
	rule := "+" + strings.Repeat("-", v.opts.Width-2) + "+"
	v.lines = append(v.lines, rule)
	for _, line := range wrap(doc.Title(), inner) {
		v.lines = append(v.lines, "| "+center(line, inner)+" |")
	}
	v.lines = append(v.lines, rule, "")
}

// VisitParagraph implements model.Visitor.
func (v *PDFVisitor) VisitParagraph(p *model.Paragraph) {
	v.lines = append(v.lines, wrap(p.Text, v.opts.Width)...)
	v.lines = append(v.lines, "")
}

// VisitHeadline implements model.Visitor.
func (v *PDFVisitor) VisitHeadline(h *model.Headline) {
	level := h.Level()
	v.sections[level-1]++
	for i := level; i < len(v.sections); i++ {
		v.sections[i] = 0
	}

	parts := make([]string, level)
	for i := range level {
		parts[i] = strconv.Itoa(v.sections[i])
	}
	heading := strings.Join(parts, ".") + " " + h.Text

	wrapped := wrap(heading, v.opts.Width)
	v.lines = append(v.lines, wrapped...)
	if level == 1 {
		width := 0
		for _, line := range wrapped {
			width = max(width, uniseg.StringWidth(line))
		}
		v.lines = append(v.lines, strings.Repeat("-", width))
	}
	v.lines = append(v.lines, "")
}

// VisitImage implements model.Visitor.
func (v *PDFVisitor) VisitImage(img *model.Image) {
	v.figures++
	label := fmt.Sprintf("[Figure %d: %s (%dx%d)]", v.figures, img.Filename, img.Width, img.Height)
	for _, line := range wrap(label, v.opts.Width) {
		v.lines = append(v.lines, center(line, v.opts.Width))
	}
	v.lines = append(v.lines, "")
}

// EndDocument paginates the body and adds the footers.
func (v *PDFVisitor) EndDocument(doc *model.Document) {
	body := v.opts.PageLines - footerLines
	pages := max(1, (len(v.lines)+body-1)/body)

	var b strings.Builder
	for page := range pages {
		if page > 0 {
			b.WriteString(PageBreak)
		}
		start := page * body
		end := min(start+body, len(v.lines))
		for _, line := range v.lines[start:end] {
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
		for range body - (end - start) {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("-", v.opts.Width) + "\n")
		b.WriteString(v.footer(doc.Len(), page+1, pages) + "\n")
	}
	v.out = b.String()
}

func (v *PDFVisitor) footer(elements, page, pages int) string {
	left := "Elements: " + strconv.Itoa(elements)
	right := fmt.Sprintf("Page %d of %d", page, pages)
	gap := max(1, v.opts.Width-uniseg.StringWidth(left)-uniseg.StringWidth(right))
	return left + strings.Repeat(" ", gap) + right
}

// Text returns the pages from the last traversal.
func (v *PDFVisitor) Text() string {
	return v.out
}

// PDFText runs a PDF-style traversal over doc.
func PDFText(doc *model.Document, opts PDFOptions) string {
	v := NewPDFVisitor(opts)
	doc.Accept(v)
	return v.Text()
}

// wrap breaks s into lines no wider than width cells, splitting on
// whitespace. A word wider than width occupies a line of its own. Empty
// text yields a single empty line.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, w := range words {
		ww := uniseg.StringWidth(w)
		if curWidth > 0 && curWidth+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(w)
		curWidth += ww
	}
	return append(lines, cur.String())
}

// center pads s with spaces to width cells, centred.
func center(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
