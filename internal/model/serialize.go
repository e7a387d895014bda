package model

import (
	"fmt"
	"math"
)

// FromSerializable rebuilds a Document from the form produced by
// Document.Serializable. Numbers may arrive as any integer or float type
// since decoders disagree on numeric representation. The result is clean.
func FromSerializable(data map[string]any) (*Document, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformed)
	}
	if tag, ok := data["type"]; ok && tag != string(KindDocument) {
		return nil, fmt.Errorf("%w: document type tag %v", ErrMalformed, tag)
	}

	title, err := stringField(data, "title", true)
	if err != nil {
		return nil, err
	}
	doc := New(title)

	raw, ok := data["elements"]
	if !ok || raw == nil {
		return doc, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: elements is %T, want list", ErrMalformed, raw)
	}

	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrMalformed, i, item)
		}
		el, err := ElementFromSerializable(m)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if err := doc.Append(el); err != nil {
			return nil, err
		}
	}

	doc.MarkClean()
	return doc, nil
}

// ElementFromSerializable rebuilds a single element from its tagged form.
func ElementFromSerializable(data map[string]any) (Element, error) {
	tag, err := stringField(data, "type", true)
	if err != nil {
		return nil, err
	}

	switch Kind(tag) {
	case KindParagraph:
		text, err := stringField(data, "text", false)
		if err != nil {
			return nil, err
		}
		return NewParagraph(text), nil

	case KindHeadline:
		text, err := stringField(data, "text", false)
		if err != nil {
			return nil, err
		}
		level, err := intField(data, "level")
		if err != nil {
			return nil, err
		}
		return NewHeadline(text, level), nil

	case KindImage:
		name, err := stringField(data, "filename", false)
		if err != nil {
			return nil, err
		}
		w, err := intField(data, "width")
		if err != nil {
			return nil, err
		}
		h, err := intField(data, "height")
		if err != nil {
			return nil, err
		}
		return NewImage(name, w, h), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func stringField(data map[string]any, key string, required bool) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("%w: missing %q", ErrMalformed, key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrMalformed, key, v)
	}
	return s, nil
}

func intField(data map[string]any, key string) (int, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformed, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformed, key)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %q is %T, want number", ErrMalformed, key, v)
}
