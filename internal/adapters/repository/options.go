package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock overrides the time source for created_at stamps, used by
// tests that need deterministic ordering.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}
