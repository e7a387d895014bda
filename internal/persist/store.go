package persist

import (
	"path/filepath"
	"strings"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/vfs"
)

// Store saves and loads documents as files, picking the codec from the
// file extension: .yaml and .yml use YAML, anything else JSON.
type Store struct {
	fs     vfs.FS
	logger *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the file system.
func WithFS(fsys vfs.FS) Option {
	return func(s *Store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a store on the OS file system.
func NewStore(opts ...Option) *Store {
	s := &Store{fs: vfs.NewOSFS(), logger: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CodecFor returns the codec used for path.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	}
	return JSONCodec{}
}

// Save writes doc to path, replacing any existing file, and marks the
// document clean. On failure the document is left as it was.
func (s *Store) Save(doc *model.Document, path string) error {
	data, err := CodecFor(path).Marshal(doc)
	if err != nil {
		s.logger.Error("Failed to save document: %v", err)
		return NewOperationError("save", path, err)
	}
	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Failed to save document: %v", err)
		return NewOperationError("save", path, err)
	}

	doc.MarkClean()
	s.logger.Info("Document saved to: %s", path)
	return nil
}

// Load reads a document from path. The result is clean.
func (s *Store) Load(path string) (*model.Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.logger.Error("Failed to load document: %v", err)
		return nil, NewOperationError("load", path, err)
	}
	doc, err := CodecFor(path).Unmarshal(data)
	if err != nil {
		s.logger.Error("Failed to load document: %v", err)
		return nil, NewOperationError("load", path, err)
	}

	s.logger.Info("Document loaded from: %s", path)
	return doc, nil
}
