package model

import (
	"errors"
	"testing"
)

func sampleDocument() *Document {
	doc := New("Demo")
	_ = doc.Append(NewHeadline("Intro", 2))
	_ = doc.Append(NewParagraph("Hello world"))
	_ = doc.Append(NewImage("cat.png", 640, 480))
	return doc
}

func assertSameContent(t *testing.T, got, want *Document) {
	t.Helper()
	if got.Title() != want.Title() {
		t.Errorf("title = %q, want %q", got.Title(), want.Title())
	}
	if got.Len() != want.Len() {
		t.Fatalf("len = %d, want %d", got.Len(), want.Len())
	}
	for i := 0; i < want.Len(); i++ {
		g, _ := got.At(i)
		w, _ := want.At(i)
		if g.Kind() != w.Kind() || g.Render() != w.Render() {
			t.Errorf("element %d = %s %q, want %s %q", i, g.Kind(), g.Render(), w.Kind(), w.Render())
		}
	}
}

func TestSerializableForm(t *testing.T) {
	form := sampleDocument().Serializable()

	if form["type"] != "Document" || form["title"] != "Demo" {
		t.Errorf("unexpected header: %v", form)
	}
	elements, ok := form["elements"].([]any)
	if !ok || len(elements) != 3 {
		t.Fatalf("elements = %#v", form["elements"])
	}
	h := elements[0].(map[string]any)
	if h["type"] != "Headline" || h["level"] != 2 || h["text"] != "Intro" {
		t.Errorf("headline form = %v", h)
	}
	img := elements[2].(map[string]any)
	if img["filename"] != "cat.png" || img["width"] != 640 || img["height"] != 480 {
		t.Errorf("image form = %v", img)
	}
}

func TestSerializableRoundTrip(t *testing.T) {
	want := sampleDocument()
	got, err := FromSerializable(want.Serializable())
	if err != nil {
		t.Fatalf("FromSerializable: %v", err)
	}
	assertSameContent(t, got, want)
	if got.IsDirty() {
		t.Error("reconstructed document should be clean")
	}
}

func TestFromSerializableNumberTypes(t *testing.T) {
	form := map[string]any{
		"type":  "Document",
		"title": "Nums",
		"elements": []any{
			map[string]any{"type": "Headline", "text": "a", "level": float64(2)},
			map[any]any{"type": "Image", "filename": "x", "width": int64(3), "height": uint64(4)},
		},
	}

	doc, err := FromSerializable(form)
	if err != nil {
		t.Fatalf("FromSerializable: %v", err)
	}
	if el, _ := doc.At(1); el.Render() != "[Image: x (3x4)]" {
		t.Errorf("image = %q", el.Render())
	}
}

func TestFromSerializableClampsLevel(t *testing.T) {
	doc, err := FromSerializable(map[string]any{
		"title":    "T",
		"elements": []any{map[string]any{"type": "Headline", "text": "x", "level": 7}},
	})
	if err != nil {
		t.Fatalf("FromSerializable: %v", err)
	}
	el, _ := doc.At(0)
	if el.(*Headline).Level() != 3 {
		t.Errorf("level = %d, want 3", el.(*Headline).Level())
	}
}

func TestFromSerializableErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    map[string]any
		wantErr error
	}{
		{"nil", nil, ErrMalformed},
		{"missing title", map[string]any{"type": "Document"}, ErrMalformed},
		{"wrong tag", map[string]any{"type": "Paragraph", "title": "x"}, ErrMalformed},
		{"elements not list", map[string]any{"title": "x", "elements": "nope"}, ErrMalformed},
		{"unknown kind", map[string]any{"title": "x", "elements": []any{
			map[string]any{"type": "Table"},
		}}, ErrUnknownKind},
		{"fractional width", map[string]any{"title": "x", "elements": []any{
			map[string]any{"type": "Image", "filename": "f", "width": 1.5, "height": 1},
		}}, ErrMalformed},
		{"string level", map[string]any{"title": "x", "elements": []any{
			map[string]any{"type": "Headline", "text": "h", "level": "2"},
		}}, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSerializable(tt.form); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
