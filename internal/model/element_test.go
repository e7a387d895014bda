package model

import (
	"errors"
	"testing"
)

func TestHeadlineLevelClamp(t *testing.T) {
	tests := []struct {
		level    int
		expected int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{100, 3},
	}

	for _, tt := range tests {
		h := NewHeadline("x", tt.level)
		if h.Level() != tt.expected {
			t.Errorf("NewHeadline level %d stored %d, want %d", tt.level, h.Level(), tt.expected)
		}

		h = NewHeadline("x", 2)
		h.SetLevel(tt.level)
		if h.Level() != tt.expected {
			t.Errorf("SetLevel(%d) stored %d, want %d", tt.level, h.Level(), tt.expected)
		}
	}
}

func TestElementRender(t *testing.T) {
	tests := []struct {
		name     string
		el       Element
		expected string
	}{
		{"paragraph", NewParagraph("Hello world"), "Hello world"},
		{"headline 1", NewHeadline("Intro", 1), "# Intro"},
		{"headline 3", NewHeadline("Deep", 3), "### Deep"},
		{"image", NewImage("cat.png", 640, 480), "[Image: cat.png (640x480)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Render(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
			if tt.el.IsComposite() {
				t.Error("leaf reported composite")
			}
		})
	}
}

func TestImageAcceptsAnyDimensions(t *testing.T) {
	img := NewImage("", -1, 0)
	if img.Width != -1 || img.Height != 0 {
		t.Errorf("dimensions altered: %dx%d", img.Width, img.Height)
	}
}

type kindRecorder struct {
	BaseVisitor
	seen []Kind
}

func (r *kindRecorder) VisitParagraph(*Paragraph) { r.seen = append(r.seen, KindParagraph) }
func (r *kindRecorder) VisitHeadline(*Headline)   { r.seen = append(r.seen, KindHeadline) }
func (r *kindRecorder) VisitImage(*Image)         { r.seen = append(r.seen, KindImage) }

func TestAcceptDispatchesOnOwnKind(t *testing.T) {
	elements := []Element{NewImage("a", 1, 1), NewParagraph("p"), NewHeadline("h", 1)}
	r := &kindRecorder{}
	for _, el := range elements {
		el.Accept(r)
	}

	want := []Kind{KindImage, KindParagraph, KindHeadline}
	for i, k := range want {
		if r.seen[i] != k {
			t.Errorf("visit %d = %s, want %s", i, r.seen[i], k)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"paragraph", KindParagraph, false},
		{"Headline", KindHeadline, false},
		{" IMAGE ", KindImage, false},
		{"table", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", tt.input, got, err, tt.expected)
		}
	}
}

func TestNewElement(t *testing.T) {
	el, err := NewElement(KindHeadline, ElementFields{Text: "Title", Level: 9})
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	h, ok := el.(*Headline)
	if !ok {
		t.Fatalf("got %T, want *Headline", el)
	}
	if h.Level() != 3 {
		t.Errorf("level = %d, want 3", h.Level())
	}

	el, err = NewElement(KindImage, ElementFields{Filename: "x.png", Width: 10, Height: 20})
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	if el.Render() != "[Image: x.png (10x20)]" {
		t.Errorf("image render = %q", el.Render())
	}

	el, err = NewElement(KindImage, ElementFields{Filename: "d.png"})
	if err != nil || el.Render() != "[Image: d.png (100x100)]" {
		t.Errorf("default image = %v, %v", el, err)
	}

	if _, err := NewElement(Kind("Table"), ElementFields{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}
