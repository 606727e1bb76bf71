// Package scoring implements the score-sheet runtime: per-field entered
// values, type-specific contribution arithmetic, and the clamped
// non-negative sheet total.
package scoring

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value holds one field's entered state. Numeric entries (scores and
// violation counts) use Number/Set; selections and free text use Text.
// Notes ride alongside the primary entry and never affect the total.
type Value struct {
	Number float64
	Set    bool // whether Number was entered
	Text   string
	Notes  string
}

// Num builds a numeric entry.
func Num(v float64) Value { return Value{Number: v, Set: true} }

// Str builds a text or selection entry.
func Str(s string) Value { return Value{Text: s} }

// Zero reports whether nothing has been entered.
func (v Value) Zero() bool {
	return !v.Set && v.Text == "" && v.Notes == ""
}

// Coerce converts an untyped JSON score into a Value. Numbers and
// numeric strings become numeric entries; booleans count as one
// occurrence; anything else is kept as text. Unparseable input yields an
// empty entry, never an error.
func Coerce(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case float64:
		return Num(x)
	case int:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case bool:
		if x {
			return Num(1)
		}
		return Num(0)
	case json.Number:
		if n, err := x.Float64(); err == nil {
			return Num(n)
		}
		return Str(x.String())
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Value{}
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return Num(n)
		}
		return Str(s)
	default:
		return Value{}
	}
}

// Wire returns the untyped representation persisted in the flat scores
// map: the number when set, otherwise the text, otherwise nil.
func (v Value) Wire() any {
	if v.Set {
		return v.Number
	}
	if v.Text != "" {
		return v.Text
	}
	return nil
}
