package addrbook

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Cached remembers every successful lookup of the wrapped resolver, including
// "no label" answers. Failed lookups are not cached so they can be retried.
type Cached struct {
	inner LabelResolver

	mu     sync.RWMutex
	labels map[string]string // keyed by lower-case address
}

func NewCached(inner LabelResolver) *Cached {
	return &Cached{
		inner:  inner,
		labels: map[string]string{},
	}
}

// LoadCached is NewCached pre-populated from a cache file written by Persist.
// A missing or unreadable file starts an empty cache.
func LoadCached(inner LabelResolver, path string) *Cached {
	c := NewCached(inner)
	content, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	stored := map[string]string{}
	if err := json.Unmarshal(content, &stored); err != nil {
		return c
	}
	for addr, label := range stored {
		c.labels[strings.ToLower(addr)] = label
	}
	return c
}

func (c *Cached) ResolveLabel(ctx context.Context, addr common.Address) (string, error) {
	key := strings.ToLower(addr.Hex())

	c.mu.RLock()
	label, found := c.labels[key]
	c.mu.RUnlock()
	if found {
		return label, nil
	}

	label, err := c.inner.ResolveLabel(ctx, addr)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.labels[key] = label
	c.mu.Unlock()
	return label, nil
}

func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.labels)
}

// Persist writes the cache as JSON to path, creating parent directories.
func (c *Cached) Persist(path string) error {
	c.mu.RLock()
	jsonData, err := json.MarshalIndent(c.labels, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating label cache directory")
	}
	return os.WriteFile(path, jsonData, 0o644)
}
