package traverse

import (
	"strings"
	"testing"

	"github.com/dshills/docedit/internal/model"
)

func TestPDFTextLayout(t *testing.T) {
	doc := model.New("Demo")
	_ = doc.Append(model.NewHeadline("Intro", 1))
	_ = doc.Append(model.NewParagraph("Hello world"))
	_ = doc.Append(model.NewHeadline("Detail", 2))
	_ = doc.Append(model.NewHeadline("Next", 1))
	_ = doc.Append(model.NewHeadline("Sub", 2))
	_ = doc.Append(model.NewImage("cat.png", 640, 480))

	out := PDFText(doc, PDFOptions{Width: 30})
	lines := strings.Split(out, "\n")

	if lines[0] != "+----------------------------+" {
		t.Errorf("box top = %q", lines[0])
	}
	if lines[1] != "|            Demo            |" {
		t.Errorf("title line = %q", lines[1])
	}

	for _, want := range []string{
		"1 Intro\n-------\n",
		"Hello world\n",
		"1.1 Detail\n",
		"2 Next\n------\n",
		"2.1 Sub\n",
		"[Figure 1: cat.png (640x480)]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Elements: 6") || !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("footer missing in\n%s", out)
	}
	if strings.Contains(out, PageBreak) {
		t.Error("single page should have no page break")
	}
}

func TestPDFTextWrapsParagraphs(t *testing.T) {
	doc := model.New("T")
	_ = doc.Append(model.NewParagraph(strings.Repeat("word ", 40)))

	out := PDFText(doc, PDFOptions{Width: 25})
	for i, line := range strings.Split(out, "\n") {
		if len(line) > 25 {
			t.Errorf("line %d is %d wide: %q", i, len(line), line)
		}
	}
}

func TestPDFTextPaginates(t *testing.T) {
	doc := model.New("Long")
	for range 30 {
		_ = doc.Append(model.NewParagraph("line"))
	}

	out := PDFText(doc, PDFOptions{Width: 40, PageLines: 20})
	pages := strings.Split(out, PageBreak)
	if len(pages) < 2 {
		t.Fatalf("expected several pages, got %d", len(pages))
	}
	for i, page := range pages {
		if n := strings.Count(page, "\n"); n != 20 {
			t.Errorf("page %d has %d lines, want 20", i+1, n)
		}
		if !strings.Contains(page, "Elements: 30") {
			t.Errorf("page %d missing footer", i+1)
		}
	}
	last := pages[len(pages)-1]
	if !strings.Contains(last, "Page 4 of 4") {
		t.Errorf("last page footer wrong:\n%s", last)
	}
}

func TestPDFTextEmptyDocument(t *testing.T) {
	out := PDFText(model.New("Empty"), PDFOptions{})
	if !strings.Contains(out, "Elements: 0") || !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("empty document footer missing:\n%s", out)
	}
	if strings.Count(out, "\n") != DefaultPageLines {
		t.Errorf("page has %d lines, want %d", strings.Count(out, "\n"), DefaultPageLines)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected []string
	}{
		{"", 10, []string{""}},
		{"a b c", 10, []string{"a b c"}},
		{"aaaa bbbb cccc", 9, []string{"aaaa bbbb", "cccc"}},
		{"short waytoolongword x", 6, []string{"short", "waytoolongword", "x"}},
	}
	for _, tt := range tests {
		got := wrap(tt.input, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestPDFFooterFillsWidth(t *testing.T) {
	doc := model.New("Wide")
	_ = doc.Append(model.NewParagraph("text"))

	for _, width := range []int{20, 30, 72} {
		out := PDFText(doc, PDFOptions{Width: width})
		var footer string
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, "Elements: ") {
				footer = line
			}
		}
		if footer == "" {
			t.Fatalf("width %d: no footer in\n%s", width, out)
		}
		if !strings.HasSuffix(footer, "Page 1 of 1") || len(footer) != width {
			t.Errorf("width %d: footer = %q (%d columns)", width, footer, len(footer))
		}
	}
}
