package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// MemStore is the default Store: mutex-guarded maps, suitable for
// development and as the test double for the SQL stores.
type MemStore struct {
	mu        sync.RWMutex
	templates map[string]model.Template
	events    map[string]model.Event
	now       func() time.Time
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		templates: make(map[string]model.Template),
		events:    make(map[string]model.Event),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutTemplate inserts or replaces a template by id.
func (s *MemStore) PutTemplate(ctx context.Context, t model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.CreatedAt.IsZero() {
		if existing, ok := s.templates[t.ID]; ok {
			t.CreatedAt = existing.CreatedAt
		} else {
			t.CreatedAt = s.now()
		}
	}
	s.templates[t.ID] = t
	return nil
}

// GetTemplate looks up a template by id.
func (s *MemStore) GetTemplate(ctx context.Context, id string) (model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return model.Template{}, ErrTemplateNotFound
	}
	return t, nil
}

// ListTemplates returns all templates, creation time ascending.
func (s *MemStore) ListTemplates(ctx context.Context) ([]model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteTemplate removes a template; unknown ids are a no-op.
func (s *MemStore) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, id)
	return nil
}

// CreateEvent persists a new scored instance.
func (s *MemStore) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[e.ID]; exists {
		return model.Event{}, ErrDuplicateEvent
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	s.events[e.ID] = e
	return e, nil
}

// GetEvent looks up an event by id.
func (s *MemStore) GetEvent(ctx context.Context, id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return e, nil
}

// UpdateEvent overwrites an existing event in full.
func (s *MemStore) UpdateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.events[e.ID]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	// Creation time is immutable across edits.
	e.CreatedAt = existing.CreatedAt
	s.events[e.ID] = e
	return e, nil
}

// ListEvents returns events matching the filter, creation time ascending.
func (s *MemStore) ListEvents(ctx context.Context, f model.Filter) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, e := range s.events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteEvent removes an event; unknown ids are a no-op.
func (s *MemStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

// CountTemplates returns the number of stored templates.
func (s *MemStore) CountTemplates(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}

// CountEvents returns the number of stored events.
func (s *MemStore) CountEvents(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
