package reconcile

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"rachunki/internal/domain"
)

// ValidationCache remembers which documents reconciled cleanly so they can be
// skipped on later runs. Entries map a document fingerprint to the time of its
// last clean reconciliation. The map is append-only: a changed document has a
// new fingerprint and gets a new entry, stale entries are simply never looked
// up again.
//
// Only clean results are cached. Documents with discrepancies are re-checked
// on every run until the cause is resolved.
type ValidationCache struct {
	path string

	mu      sync.Mutex
	entries map[string]string
}

// Fingerprint derives a stable identity for a document from its path, size
// and modification time.
func Fingerprint(doc domain.SourceDocument) string {
	raw := fmt.Sprintf("%s|%d|%d", doc.Path, doc.Size, doc.ModTime.Unix())
	return fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}

// LoadCache reads the cache file at path, starting empty when the file does
// not exist or cannot be parsed.
func LoadCache(path string) *ValidationCache {
	c := &ValidationCache{
		path:    path,
		entries: make(map[string]string),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Printf("validationCache: discarding unreadable cache %s: %v", path, err)
		c.entries = make(map[string]string)
	}
	return c
}

// IsClean reports whether this exact version of the document was already
// reconciled cleanly.
func (c *ValidationCache) IsClean(doc domain.SourceDocument) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[Fingerprint(doc)]
	return ok
}

// MarkClean records a clean reconciliation and flushes the cache to disk
// immediately, so an interrupted run keeps its progress.
func (c *ValidationCache) MarkClean(doc domain.SourceDocument) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Fingerprint(doc)] = time.Now().UTC().Format(time.RFC3339)
	return c.persistLocked()
}

func (c *ValidationCache) persistLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache %s: %w", c.path, err)
	}
	return nil
}
