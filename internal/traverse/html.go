package traverse

import (
	"strconv"
	"strings"

	"github.com/dshills/docedit/internal/model"
)

// HeadClose is the marker the HTML traversal emits to close the head
// section. Decorators insert content immediately before it.
const HeadClose = "</head>"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for use in HTML content and attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTMLVisitor produces a complete HTML page.
type HTMLVisitor struct {
	out strings.Builder
}

// NewHTMLVisitor creates an HTML traversal.
func NewHTMLVisitor() *HTMLVisitor {
	return &HTMLVisitor{}
}

// BeginDocument resets the output and writes the page header.
func (v *HTMLVisitor) BeginDocument(doc *model.Document) {
	v.out.Reset()
	v.out.WriteString("<!DOCTYPE html>\n")
	v.out.WriteString("<html>\n<head>\n")
	v.out.WriteString("<title>" + EscapeHTML(doc.Title()) + "</title>\n")
	v.out.WriteString(HeadClose + "\n<body>\n")
}

// VisitParagraph implements model.Visitor.
func (v *HTMLVisitor) VisitParagraph(p *model.Paragraph) {
	v.out.WriteString("<p>" + EscapeHTML(p.Text) + "</p>\n")
}

// VisitHeadline implements model.Visitor.
func (v *HTMLVisitor) VisitHeadline(h *model.Headline) {
	tag := "h" + strconv.Itoa(h.Level())
	v.out.WriteString("<" + tag + ">" + EscapeHTML(h.Text) + "</" + tag + ">\n")
}

// VisitImage implements model.Visitor.
func (v *HTMLVisitor) VisitImage(img *model.Image) {
	name := EscapeHTML(img.Filename)
	v.out.WriteString(`<img src="` + name + `" `)
	v.out.WriteString(`width="` + strconv.Itoa(img.Width) + `" `)
	v.out.WriteString(`height="` + strconv.Itoa(img.Height) + `" `)
	v.out.WriteString(`alt="` + name + `" />` + "\n")
}

// EndDocument closes the body and the page.
func (v *HTMLVisitor) EndDocument(*model.Document) {
	v.out.WriteString("</body>\n</html>")
}

// HTML returns the page from the last traversal.
func (v *HTMLVisitor) HTML() string {
	return v.out.String()
}

// HTML runs an HTML traversal over doc.
func HTML(doc *model.Document) string {
	v := NewHTMLVisitor()
	doc.Accept(v)
	return v.HTML()
}
