// Package builder implements author-time editing of a template's
// ordered field list: add, edit-in-place, remove, stable reorder, preset
// loading, and validation of AI-generated candidate documents.
package builder

import (
	"fmt"
	"time"

	"github.com/drillmeet/scoresheet/internal/domain/field"
)

// Builder holds the field list being authored. Every mutation
// re-serializes the criteria document and hands it to the on-change hook
// so the caller can persist it; the builder itself never does I/O.
type Builder struct {
	fields   []field.Field
	editing  string // id of the field selected for in-place replacement
	now      func() time.Time
	onChange func(criteria []byte)
}

// New creates a Builder, empty unless seeded via WithFields.
func New(opts ...Option) *Builder {
	b := &Builder{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Fields returns a copy of the current ordered field list.
func (b *Builder) Fields() []field.Field {
	out := make([]field.Field, len(b.fields))
	copy(out, b.fields)
	return out
}

// Criteria serializes the current field list to the persisted document.
func (b *Builder) Criteria() ([]byte, error) {
	return field.Marshal(b.fields)
}

// StartEdit selects an existing field; the next AddField replaces it in
// place instead of appending. Returns false for unknown ids.
func (b *Builder) StartEdit(id string) bool {
	for _, f := range b.fields {
		if f.ID == id {
			b.editing = id
			return true
		}
	}
	return false
}

// CancelEdit clears the edit selection.
func (b *Builder) CancelEdit() { b.editing = "" }

// AddField appends the draft, or replaces the field selected by
// StartEdit while preserving its position and id. Drafts with an empty
// name are silently ignored.
func (b *Builder) AddField(draft field.Field) []field.Field {
	if draft.Name == "" {
		return b.Fields()
	}
	if b.editing != "" {
		for i, f := range b.fields {
			if f.ID == b.editing {
				draft.ID = f.ID
				draft.Order = f.Order
				b.fields[i] = draft
				b.editing = ""
				b.emit()
				return b.Fields()
			}
		}
		b.editing = ""
	}
	if draft.ID == "" {
		draft.ID = fmt.Sprintf("field_%d_%s", b.now().UnixMilli(), field.Slug(draft.Name))
	}
	draft.Order = len(b.fields)
	b.fields = append(b.fields, draft)
	b.emit()
	return b.Fields()
}

// RemoveField drops the field with the given id. Remaining ids are left
// untouched; only display order is renumbered.
func (b *Builder) RemoveField(id string) []field.Field {
	kept := b.fields[:0]
	for _, f := range b.fields {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) != len(b.fields) {
		b.fields = kept
		b.renumber()
		b.emit()
	}
	return b.Fields()
}

// Reorder moves the field at oldIndex to newIndex, preserving the
// relative order of everything else. Out-of-range indexes are no-ops.
func (b *Builder) Reorder(oldIndex, newIndex int) []field.Field {
	n := len(b.fields)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n || oldIndex == newIndex {
		return b.Fields()
	}
	moved := b.fields[oldIndex]
	rest := append(b.fields[:oldIndex:oldIndex], b.fields[oldIndex+1:]...)
	b.fields = append(rest[:newIndex:newIndex], append([]field.Field{moved}, rest[newIndex:]...)...)
	b.renumber()
	b.emit()
	return b.Fields()
}

// LoadPreset replaces the whole field list with a built-in template.
func (b *Builder) LoadPreset(preset []field.Field) []field.Field {
	b.fields = make([]field.Field, len(preset))
	copy(b.fields, preset)
	b.editing = ""
	b.renumber()
	b.emit()
	return b.Fields()
}

// AcceptGenerated validates an externally generated criteria document
// and adopts it as the new field list. The document is rejected whole if
// any field fails validation; the current list is left untouched.
func (b *Builder) AcceptGenerated(doc []byte) error {
	fields, err := field.Unmarshal(doc)
	if err != nil {
		return err
	}
	if err := field.ValidateAll(fields); err != nil {
		return err
	}
	b.fields = fields
	b.editing = ""
	b.renumber()
	b.emit()
	return nil
}

func (b *Builder) renumber() {
	for i := range b.fields {
		b.fields[i].Order = i
	}
}

func (b *Builder) emit() {
	if b.onChange == nil {
		return
	}
	criteria, err := field.Marshal(b.fields)
	if err != nil {
		return
	}
	b.onChange(criteria)
}
