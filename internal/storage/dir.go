package storage

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/persist"
	"github.com/dshills/docedit/internal/vfs"
)

const docExt = ".json"

// DirBackend stores each document as <dir>/<name>.json. The id of a
// document is that path; Download and Delete also accept a bare name.
type DirBackend struct {
	name   string
	dir    string
	fs     vfs.FS
	codec  persist.Codec
	logger *logging.Logger
	ready  atomic.Bool
}

// DirOption configures a DirBackend.
type DirOption func(*DirBackend)

// WithDirFS sets the file system.
func WithDirFS(fsys vfs.FS) DirOption {
	return func(b *DirBackend) {
		if fsys != nil {
			b.fs = fsys
		}
	}
}

// WithDirLogger sets the logger.
func WithDirLogger(l *logging.Logger) DirOption {
	return func(b *DirBackend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewDirBackend creates a ready backend named name rooted at dir.
func NewDirBackend(name, dir string, opts ...DirOption) *DirBackend {
	b := &DirBackend{
		name:   name,
		dir:    filepath.Clean(dir),
		fs:     vfs.NewOSFS(),
		codec:  persist.JSONCodec{},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.ready.Store(true)
	return b
}

// SetReady marks the service authenticated or not.
func (b *DirBackend) SetReady(ready bool) {
	b.ready.Store(ready)
}

// Ready reports whether the service is authenticated.
func (b *DirBackend) Ready() bool {
	return b.ready.Load()
}

// Name returns the service name.
func (b *DirBackend) Name() string {
	return b.name
}

// Dir returns the storage directory.
func (b *DirBackend) Dir() string {
	return b.dir
}

// Connect creates the storage directory if needed.
func (b *DirBackend) Connect() error {
	if b.fs.Exists(b.dir) {
		return nil
	}
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return persist.NewOperationError("connect", b.dir, err)
	}
	b.logger.Info("Created cloud storage directory: %s", b.dir)
	return nil
}

// ID returns the canonical id for an id or bare name.
func (b *DirBackend) ID(nameOrID string) string {
	return b.path(nameOrID)
}

// path resolves an id or bare name to a file path.
func (b *DirBackend) path(id string) string {
	p := id
	if filepath.Dir(filepath.Clean(id)) != b.dir {
		p = filepath.Join(b.dir, id)
	}
	if !strings.HasSuffix(p, docExt) {
		p += docExt
	}
	return p
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// Upload stores doc as <dir>/<name>.json.
func (b *DirBackend) Upload(doc *model.Document, name string) (string, error) {
	if !b.Ready() {
		return "", persist.NewOperationError("upload", name, ErrNotReady)
	}
	if !validName(name) {
		return "", persist.NewOperationError("upload", name, ErrInvalidName)
	}
	b.logger.Info("Uploading document to %s: %s", b.name, name)

	data, err := b.codec.Marshal(doc)
	if err != nil {
		return "", persist.NewOperationError("upload", name, err)
	}
	if err := b.Connect(); err != nil {
		return "", err
	}
	id := filepath.Join(b.dir, name+docExt)
	if err := b.fs.WriteFile(id, data, 0o644); err != nil {
		b.logger.Error("Failed to upload document to %s: %v", b.name, err)
		return "", persist.NewOperationError("upload", id, err)
	}

	doc.MarkClean()
	b.logger.Info("Document uploaded successfully to %s: %s", b.name, id)
	return id, nil
}

// Download loads the document with the given id or name.
func (b *DirBackend) Download(id string) (*model.Document, error) {
	if !b.Ready() {
		return nil, persist.NewOperationError("download", id, ErrNotReady)
	}
	p := b.path(id)
	b.logger.Info("Downloading document from %s: %s", b.name, p)

	data, err := b.fs.ReadFile(p)
	if err != nil {
		b.logger.Error("Failed to download document from %s: %v", b.name, err)
		return nil, persist.NewOperationError("download", id, err)
	}
	doc, err := b.codec.Unmarshal(data)
	if err != nil {
		return nil, persist.NewOperationError("download", id, err)
	}
	return doc, nil
}

// List returns the stored names, sorted, without extension. A missing
// directory holds no documents.
func (b *DirBackend) List() ([]string, error) {
	if !b.Ready() {
		return nil, persist.NewOperationError("list", b.dir, ErrNotReady)
	}

	entries, err := b.fs.ReadDir(b.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, persist.NewOperationError("list", b.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir || !strings.HasSuffix(e.Name, docExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name, docExt))
	}
	b.logger.Info("Found %d documents in %s", len(names), b.name)
	return names, nil
}

// Delete removes the document with the given id or name.
func (b *DirBackend) Delete(id string) (bool, error) {
	if !b.Ready() {
		return false, persist.NewOperationError("delete", id, ErrNotReady)
	}

	err := b.fs.Remove(b.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, persist.NewOperationError("delete", id, err)
	}
	b.logger.Info("Document deleted from %s: %s", b.name, id)
	return true, nil
}
