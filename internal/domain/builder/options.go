package builder

import (
	"time"

	"github.com/drillmeet/scoresheet/internal/domain/field"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithFields seeds the builder with an existing field list, used when
// reopening a persisted template for editing.
func WithFields(fields []field.Field) Option {
	return func(b *Builder) {
		b.fields = make([]field.Field, len(fields))
		copy(b.fields, fields)
		b.renumber()
	}
}

// WithClock overrides the time source used for generated field ids.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithOnChange registers the hook that receives the re-serialized
// criteria document after every mutation.
func WithOnChange(fn func(criteria []byte)) Option {
	return func(b *Builder) {
		b.onChange = fn
	}
}
