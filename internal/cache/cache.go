// Package cache persists the output of slow completion sources between
// tabctx invocations.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Item is one cached suggestion
type Item struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Entry represents the cached output of one completion source
type Entry struct {
	Key       string    `json:"key"`
	Items     []Item    `json:"items"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Cache manages a JSON file cache with an in-memory copy
type Cache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates a cache stored at path, loading existing entries
func New(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := c.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return c, nil
}

// Key joins the parts identifying a cached source
func Key(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

// Get retrieves an entry from cache
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	return entry, found
}

// Fresh returns the entry for key when it is younger than ttl and was written
// by the given version
func (c *Cache) Fresh(key string, ttl time.Duration, version string) (*Entry, bool) {
	entry, found := c.Get(key)
	if !found || entry.Version != version || time.Since(entry.Timestamp) > ttl {
		return nil, false
	}
	return entry, true
}

// Set stores an entry in cache and persists it
func (c *Cache) Set(entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.Key] = entry
	return c.persist()
}

// Delete removes an entry from cache
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return c.persist()
}

// Clear removes all entries from cache
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	return c.persist()
}

// Prune removes entries older than maxAge and returns how many were removed
func (c *Cache) Prune(maxAge time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if time.Since(entry.Timestamp) > maxAge {
			delete(c.entries, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, c.persist()
}

// Len returns the number of entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// load reads cache from disk
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if entries != nil {
		c.entries = entries
	}
	return nil
}

// persist writes cache to disk
func (c *Cache) persist() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}
