package persist

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/docedit/internal/model"
)

// Codec converts a document to bytes and back.
type Codec interface {
	Marshal(doc *model.Document) ([]byte, error)
	Unmarshal(data []byte) (*model.Document, error)
}

// JSONCodec stores documents as indented JSON.
type JSONCodec struct{}

var _ Codec = JSONCodec{}

// Marshal builds the JSON form one path at a time so the header keys
// come first, then pretty-prints it.
func (JSONCodec) Marshal(doc *model.Document) ([]byte, error) {
	var err error
	out := []byte(`{}`)
	set := func(path string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}

	set("type", string(model.KindDocument))
	set("title", doc.Title())
	if err == nil {
		out, err = sjson.SetRawBytes(out, "elements", []byte(`[]`))
	}
	for _, el := range doc.Elements() {
		set("elements.-1", el.Serializable())
	}
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return pretty.Pretty(out), nil
}

// Unmarshal parses JSON into a document.
func (JSONCodec) Unmarshal(data []byte) (*model.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrDecode)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: json root is %s, want object", ErrDecode, root.Type)
	}

	form, _ := root.Value().(map[string]any)
	doc, err := model.FromSerializable(form)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return doc, nil
}

// YAMLCodec stores documents as YAML.
type YAMLCodec struct{}

var _ Codec = YAMLCodec{}

// Marshal encodes the serializable form.
func (YAMLCodec) Marshal(doc *model.Document) ([]byte, error) {
	out, err := yaml.Marshal(doc.Serializable())
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out, nil
}

// Unmarshal parses YAML into a document.
func (YAMLCodec) Unmarshal(data []byte) (*model.Document, error) {
	var form map[string]any
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	doc, err := model.FromSerializable(form)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return doc, nil
}
