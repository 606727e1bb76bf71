// Package directory resolves cadet ids to display names for the judge
// comparison view. Read-only; the roster itself is owned elsewhere.
package directory

import (
	"context"
	"errors"
	"sync"
)

// ErrUnknownCadet is returned for ids absent from the directory.
var ErrUnknownCadet = errors.New("unknown cadet id")

// Directory resolves competitor display names.
type Directory interface {
	// DisplayName returns the cadet's display name or ErrUnknownCadet.
	DisplayName(ctx context.Context, cadetID string) (string, error)
}

// InMemoryDirectory serves names from a seeded map.
type InMemoryDirectory struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewInMemoryDirectory creates a directory from a seed roster; the map
// is copied so later caller mutations cannot leak in.
func NewInMemoryDirectory(seed map[string]string) *InMemoryDirectory {
	d := &InMemoryDirectory{names: make(map[string]string, len(seed))}
	for id, name := range seed {
		d.names[id] = name
	}
	return d
}

// DisplayName returns the cadet's display name or ErrUnknownCadet.
func (d *InMemoryDirectory) DisplayName(ctx context.Context, cadetID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[cadetID]
	if !ok {
		return "", ErrUnknownCadet
	}
	return name, nil
}

// Add registers or updates a cadet's display name.
func (d *InMemoryDirectory) Add(cadetID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[cadetID] = name
}
