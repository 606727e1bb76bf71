package scoring

import (
	"github.com/drillmeet/scoresheet/internal/domain/field"
)

// JudgeOne is the judge sheet on which penalty fields are actionable.
// All other judges' sheets suppress penalty fields entirely.
const JudgeOne = "Judge 1"

// Session is the explicit, passed-in state of one score sheet being
// filled in: the template's ordered fields plus the values entered so
// far. It owns no I/O; callers persist the snapshots it emits.
type Session struct {
	fields []field.Field
	byID   map[string]field.Field
	values map[string]Value
	judge  string
}

// NewSession creates a session over the template's ordered field list.
func NewSession(fields []field.Field, opts ...Option) *Session {
	s := &Session{
		fields: fields,
		byID:   make(map[string]field.Field, len(fields)),
		values: make(map[string]Value),
	}
	for _, f := range fields {
		s.byID[f.ID] = f
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// JudgeNumber returns the judge label this session scores for.
func (s *Session) JudgeNumber() string { return s.judge }

// penaltiesActionable reports whether this sheet may enter penalties.
func (s *Session) penaltiesActionable() bool { return s.judge == JudgeOne }

// VisibleFields returns the fields this judge's sheet renders, in list
// order. Penalty fields are suppressed for every judge but Judge 1.
func (s *Session) VisibleFields() []field.Field {
	out := make([]field.Field, 0, len(s.fields))
	for _, f := range s.fields {
		if f.IsPenalty() && !s.penaltiesActionable() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Set merges a new entry for fieldID and returns the updated values
// snapshot together with the recomputed total. Writes are silently
// rejected (no-op) when the field caps entry at a maximum and the value
// exceeds it or is negative, and when a penalty field is not actionable
// for this judge. Existing notes on the field are preserved.
func (s *Session) Set(fieldID string, v Value) (map[string]Value, float64) {
	f, known := s.byID[fieldID]
	if known && !s.accepts(f, v) {
		return s.Values(), s.Total()
	}
	prev := s.values[fieldID]
	v.Notes = prev.Notes
	s.values[fieldID] = v
	return s.Values(), s.Total()
}

// SetNotes updates the notes attached to a field without touching its
// primary entry or the total.
func (s *Session) SetNotes(fieldID, notes string) {
	v := s.values[fieldID]
	v.Notes = notes
	s.values[fieldID] = v
}

func (s *Session) accepts(f field.Field, v Value) bool {
	if f.IsPenalty() && !s.penaltiesActionable() {
		return false
	}
	if !v.Set {
		return true
	}
	if v.Number < 0 {
		return false
	}
	if max := f.MaxScore(); max > 0 && v.Number > max {
		return false
	}
	return true
}

// Total recomputes the sheet total from the current values. Penalty
// fields are excluded from the sum when not actionable for this judge.
func (s *Session) Total() float64 {
	return ComputeTotal(s.VisibleFields(), s.values)
}

// Values returns a copy of the entered values keyed by field id.
func (s *Session) Values() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
