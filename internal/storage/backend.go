// Package storage provides remote document storage behind a caching
// proxy. DirBackend simulates a cloud service with a local directory.
package storage

import (
	"errors"

	"github.com/dshills/docedit/internal/model"
)

// Errors returned by backends.
var (
	ErrNotReady    = errors.New("storage service not authenticated")
	ErrInvalidName = errors.New("invalid document name")
)

// Backend is a remote document store.
type Backend interface {
	// Upload stores doc under name and returns its id.
	Upload(doc *model.Document, name string) (string, error)

	// Download fetches the document with the given id.
	Download(id string) (*model.Document, error)

	// List returns the stored document names.
	List() ([]string, error)

	// Delete removes a document and reports whether it existed.
	Delete(id string) (bool, error)

	// Ready reports whether the service is authenticated.
	Ready() bool

	// Name returns the display name of the service.
	Name() string
}

// Resolver is implemented by backends that accept several spellings of
// the same id. The cache keys entries by the resolved id.
type Resolver interface {
	ID(nameOrID string) string
}

// Connector is implemented by backends that need a one-time setup
// before first use.
type Connector interface {
	Connect() error
}
