// Package repository defines the template/event store interface and its
// in-memory and SQL implementations.
package repository

import (
	"context"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// Store provides read/write access to persisted templates and scored
// competition events. Implementations must translate missing rows to the
// sentinel errors in errors.go.
type Store interface {
	// PutTemplate inserts or replaces a template by id.
	PutTemplate(ctx context.Context, t model.Template) error
	// GetTemplate returns ErrTemplateNotFound for unknown ids.
	GetTemplate(ctx context.Context, id string) (model.Template, error)
	// ListTemplates returns all templates ordered by creation time.
	ListTemplates(ctx context.Context) ([]model.Template, error)
	// DeleteTemplate removes a template; unknown ids are a no-op.
	DeleteTemplate(ctx context.Context, id string) error

	// CreateEvent persists a new scored instance. Ids must be unique.
	CreateEvent(ctx context.Context, e model.Event) (model.Event, error)
	// GetEvent returns ErrEventNotFound for unknown ids.
	GetEvent(ctx context.Context, id string) (model.Event, error)
	// UpdateEvent overwrites an existing event in full (last writer wins).
	UpdateEvent(ctx context.Context, e model.Event) (model.Event, error)
	// ListEvents returns events matching the filter, creation time ascending.
	ListEvents(ctx context.Context, f model.Filter) ([]model.Event, error)
	// DeleteEvent removes an event; unknown ids are a no-op.
	DeleteEvent(ctx context.Context, id string) error

	// CountTemplates and CountEvents feed the stats endpoint.
	CountTemplates(ctx context.Context) int
	CountEvents(ctx context.Context) int
}
