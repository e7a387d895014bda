package persist

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/vfs"
)

func sampleDocument() *model.Document {
	doc := model.New("Demo")
	_ = doc.Append(model.NewHeadline("Intro", 2))
	_ = doc.Append(model.NewParagraph(`Quotes "and" unicode ✓`))
	_ = doc.Append(model.NewImage("cat.png", 640, 480))
	return doc
}

func assertSameContent(t *testing.T, got, want *model.Document) {
	t.Helper()
	if got.Title() != want.Title() {
		t.Errorf("title = %q, want %q", got.Title(), want.Title())
	}
	if got.Len() != want.Len() {
		t.Fatalf("len = %d, want %d", got.Len(), want.Len())
	}
	for i := range want.Len() {
		g, _ := got.At(i)
		w, _ := want.At(i)
		if g.Kind() != w.Kind() || g.Render() != w.Render() {
			t.Errorf("element %d = %s %q, want %s %q", i, g.Kind(), g.Render(), w.Kind(), w.Render())
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codecs := []struct {
		name  string
		codec Codec
	}{
		{"json", JSONCodec{}},
		{"yaml", YAMLCodec{}},
	}

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			want := sampleDocument()
			data, err := tc.codec.Marshal(want)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := tc.codec.Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v\n%s", err, data)
			}
			assertSameContent(t, got, want)
			if got.IsDirty() {
				t.Error("decoded document should be clean")
			}
		})
	}
}

func TestJSONCodecLayout(t *testing.T) {
	data, err := JSONCodec{}.Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if !strings.HasPrefix(string(data), "{\n  \"type\": \"Document\",\n  \"title\": \"Demo\",") {
		t.Errorf("unexpected header:\n%s", data)
	}
	if got := gjson.GetBytes(data, "elements.#").Int(); got != 3 {
		t.Errorf("elements = %d, want 3", got)
	}
	if got := gjson.GetBytes(data, "elements.0.level").Int(); got != 2 {
		t.Errorf("headline level = %d", got)
	}
	if got := gjson.GetBytes(data, "elements.2.width").Int(); got != 640 {
		t.Errorf("image width = %d", got)
	}
}

func TestJSONCodecEmptyDocument(t *testing.T) {
	data, err := JSONCodec{}.Marshal(model.New("Empty"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	doc, err := JSONCodec{}.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Title() != "Empty" || doc.Len() != 0 {
		t.Errorf("got %q with %d elements", doc.Title(), doc.Len())
	}
}

func TestCodecDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		data  string
	}{
		{"json garbage", JSONCodec{}, "{not json"},
		{"json array", JSONCodec{}, "[1,2]"},
		{"json no title", JSONCodec{}, `{"type":"Document"}`},
		{"json bad element", JSONCodec{}, `{"title":"x","elements":[{"type":"Table"}]}`},
		{"yaml garbage", YAMLCodec{}, "title: [unclosed"},
		{"yaml empty", YAMLCodec{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.codec.Unmarshal([]byte(tt.data)); !errors.Is(err, ErrDecode) {
				t.Errorf("error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestCodecFor(t *testing.T) {
	tests := []struct {
		path string
		yaml bool
	}{
		{"doc.json", false},
		{"doc.yaml", true},
		{"DOC.YML", true},
		{"doc", false},
		{"doc.txt", false},
	}
	for _, tt := range tests {
		_, isYAML := CodecFor(tt.path).(YAMLCodec)
		if isYAML != tt.yaml {
			t.Errorf("CodecFor(%q) yaml = %v, want %v", tt.path, isYAML, tt.yaml)
		}
	}
}

func TestStoreSaveLoad(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	fsys := vfs.NewMemFS()
	store := NewStore(WithFS(fsys), WithLogger(logger))

	for _, path := range []string{"/docs/demo.json", "/docs/demo.yaml"} {
		_ = fsys.MkdirAll("/docs", 0o755)
		doc := sampleDocument()
		if !doc.IsDirty() {
			t.Fatal("sample should be dirty")
		}
		if err := store.Save(doc, path); err != nil {
			t.Fatalf("Save(%s): %v", path, err)
		}
		if doc.IsDirty() {
			t.Error("Save should mark the document clean")
		}

		loaded, err := store.Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		assertSameContent(t, loaded, doc)
	}

	if !strings.Contains(buf.String(), "Document saved to: /docs/demo.json") ||
		!strings.Contains(buf.String(), "Document loaded from: /docs/demo.yaml") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestStoreFailuresLeaveDocumentUntouched(t *testing.T) {
	store := NewStore(WithFS(vfs.NewMemFS()))
	doc := sampleDocument()

	err := store.Save(doc, "/missing/dir/doc.json")
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "save" {
		t.Fatalf("error = %v, want save OperationError", err)
	}
	if !doc.IsDirty() {
		t.Error("failed save should not mark the document clean")
	}

	_, err = store.Load("/nope.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load error = %v, want ErrNotExist", err)
	}
	if !strings.HasPrefix(err.Error(), "load /nope.json: ") {
		t.Errorf("error text = %q", err.Error())
	}
}

func TestStoreOnDisk(t *testing.T) {
	path := t.TempDir() + "/demo.json"
	store := NewStore()
	if err := store.Save(sampleDocument(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameContent(t, doc, sampleDocument())
}
