package model

import "errors"

// Model errors.
var (
	// ErrElementNotFound indicates the element is not part of the document.
	ErrElementNotFound = errors.New("element not found in document")

	// ErrElementOwned indicates the element already belongs to a document.
	ErrElementOwned = errors.New("element already belongs to a document")

	// ErrNilElement indicates a nil element was passed.
	ErrNilElement = errors.New("nil element")

	// ErrUnknownKind indicates an unrecognised element type tag.
	ErrUnknownKind = errors.New("unknown element kind")

	// ErrMalformed indicates a serialized form is missing or mistypes a field.
	ErrMalformed = errors.New("malformed serialized document")
)
