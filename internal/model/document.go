package model

import (
	"fmt"
	"slices"
)

// Document is the root composite: a title and an ordered sequence of
// elements it owns exclusively.
//
// Document is not safe for concurrent mutation; a single editing session
// owns it.
type Document struct {
	title     string
	elements  []Element
	dirty     bool
	observers []subscription
	nextSubID uint64
}

// New creates an empty, clean document.
func New(title string) *Document {
	return &Document{title: title}
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// SetTitle changes the title. A different title marks the document dirty
// and notifies observers.
func (d *Document) SetTitle(title string) {
	if title == d.title {
		return
	}
	d.title = title
	d.changed()
}

// IsComposite is always true for a Document.
func (d *Document) IsComposite() bool { return true }

// Len returns the number of elements.
func (d *Document) Len() int { return len(d.elements) }

// Elements returns a copy of the element sequence.
func (d *Document) Elements() []Element {
	return slices.Clone(d.elements)
}

// At returns the element at index i.
func (d *Document) At(i int) (Element, bool) {
	if i < 0 || i >= len(d.elements) {
		return nil, false
	}
	return d.elements[i], true
}

// IndexOf returns the position of el by identity, or -1.
func (d *Document) IndexOf(el Element) int {
	for i, e := range d.elements {
		if e == el {
			return i
		}
	}
	return -1
}

// Append adds el at the end of the sequence.
func (d *Document) Append(el Element) error {
	return d.Insert(len(d.elements), el)
}

// Insert places el at index i, clamped to [0, Len()].
func (d *Document) Insert(i int, el Element) error {
	if el == nil {
		return ErrNilElement
	}
	if owner := el.base().owner; owner != nil {
		return fmt.Errorf("insert %s: %w", el.Kind(), ErrElementOwned)
	}

	i = max(0, min(i, len(d.elements)))
	d.elements = slices.Insert(d.elements, i, el)
	el.base().owner = d
	d.changed()
	return nil
}

// Remove takes el out of the sequence wherever it sits and returns the
// index it occupied.
func (d *Document) Remove(el Element) (int, error) {
	if el == nil {
		return -1, ErrNilElement
	}
	i := d.IndexOf(el)
	if i < 0 {
		return -1, fmt.Errorf("remove %s: %w", el.Kind(), ErrElementNotFound)
	}

	d.elements = slices.Delete(d.elements, i, i+1)
	el.base().owner = nil
	d.changed()
	return i, nil
}

// IsDirty reports whether the document changed since the last save or load.
func (d *Document) IsDirty() bool { return d.dirty }

// MarkClean clears the dirty flag after a successful save or load.
func (d *Document) MarkClean() { d.dirty = false }

// Accept runs a full traversal: BeginDocument, each element in order,
// then EndDocument.
func (d *Document) Accept(v Visitor) {
	v.BeginDocument(d)
	for _, el := range slices.Clone(d.elements) {
		el.Accept(v)
	}
	v.EndDocument(d)
}

// Serializable returns the document form: type tag, title and the
// serialized elements in order.
func (d *Document) Serializable() map[string]any {
	elements := make([]any, 0, len(d.elements))
	for _, el := range d.elements {
		elements = append(elements, el.Serializable())
	}
	return map[string]any{
		"type":     string(KindDocument),
		"title":    d.title,
		"elements": elements,
	}
}

func (d *Document) changed() {
	d.dirty = true
	d.notify()
}
