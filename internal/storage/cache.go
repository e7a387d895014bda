package storage

import (
	"sync"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
)

// Cache wraps a Backend. The backend is connected on first use; uploads
// and downloads populate an in-memory map keyed by id, and a cached id
// is served without contacting the backend until Delete or Clear.
// Listing always goes to the backend.
type Cache struct {
	mu        sync.Mutex
	backend   Backend
	entries   map[string]*model.Document
	connected bool
	logger    *logging.Logger
}

var _ Backend = (*Cache)(nil)

// NewCache wraps backend.
func NewCache(backend Backend, logger *logging.Logger) *Cache {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Cache{
		backend: backend,
		entries: make(map[string]*model.Document),
		logger:  logger,
	}
}

// key returns the cache key for id.
func (c *Cache) key(id string) string {
	if r, ok := c.backend.(Resolver); ok {
		return r.ID(id)
	}
	return id
}

// connect runs once. mu must be held.
func (c *Cache) connect() error {
	if c.connected {
		return nil
	}
	c.logger.Info("Initializing cloud storage connection: %s", c.backend.Name())
	if conn, ok := c.backend.(Connector); ok {
		if err := conn.Connect(); err != nil {
			return err
		}
	}
	c.connected = true
	return nil
}

// Upload forwards to the backend and caches doc under the returned id.
func (c *Cache) Upload(doc *model.Document, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(); err != nil {
		return "", err
	}
	id, err := c.backend.Upload(doc, name)
	if err != nil {
		return "", err
	}
	c.entries[c.key(id)] = doc
	c.logger.Debug("Document cached after upload: %s", id)
	return id, nil
}

// Download serves id from the cache, or fetches and caches it.
func (c *Cache) Download(id string) (*model.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(); err != nil {
		return nil, err
	}
	key := c.key(id)
	if doc, ok := c.entries[key]; ok {
		c.logger.Info("Document found in cache: %s", id)
		return doc, nil
	}

	c.logger.Info("Cache miss, downloading: %s", id)
	doc, err := c.backend.Download(id)
	if err != nil {
		return nil, err
	}
	c.entries[key] = doc
	return doc, nil
}

// List always delegates to the backend.
func (c *Cache) List() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(); err != nil {
		return nil, err
	}
	return c.backend.List()
}

// Delete forwards to the backend and evicts id whatever the outcome.
func (c *Cache) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(); err != nil {
		return false, err
	}
	ok, err := c.backend.Delete(id)
	delete(c.entries, c.key(id))
	return ok, err
}

// Ready reports the backend's authentication state.
func (c *Cache) Ready() bool {
	return c.backend.Ready()
}

// Name returns the backend name marked as cached.
func (c *Cache) Name() string {
	return c.backend.Name() + " (Cached)"
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("Clearing cache (%d documents)", len(c.entries))
	clear(c.entries)
}
