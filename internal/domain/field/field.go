// Package field defines the score-sheet field vocabulary: the set of
// field kinds a template may contain, their per-kind configuration, and
// the persisted criteria JSON codec.
package field

// Kind enumerates the supported field types. Every consumer switches
// exhaustively over these values; adding a kind requires touching each
// switch.
type Kind string

// Supported field kinds.
const (
	KindText            Kind = "text"
	KindDropdown        Kind = "dropdown"
	KindNumber          Kind = "number"
	KindSectionHeader   Kind = "section_header"
	KindLabel           Kind = "label"
	KindPenalty         Kind = "penalty"
	KindPenaltyCheckbox Kind = "penalty_checkbox"
	KindScoringScale    Kind = "scoring_scale"
	KindCalculated      Kind = "calculated"
)

// Kinds returns all known kinds in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindText,
		KindDropdown,
		KindNumber,
		KindSectionHeader,
		KindLabel,
		KindPenalty,
		KindPenaltyCheckbox,
		KindScoringScale,
		KindCalculated,
	}
}

// Known reports whether k is a recognized kind.
func (k Kind) Known() bool {
	switch k {
	case KindText, KindDropdown, KindNumber, KindSectionHeader, KindLabel,
		KindPenalty, KindPenaltyCheckbox, KindScoringScale, KindCalculated:
		return true
	}
	return false
}

// TextType selects the length class for text fields.
type TextType string

// Text length classes and their character limits.
const (
	TextShort TextType = "short"
	TextNotes TextType = "notes"

	ShortMaxLength = 75
	NotesMaxLength = 2500
)

// MaxLength returns the persisted character limit for the text type.
func (t TextType) MaxLength() int {
	if t == TextNotes {
		return NotesMaxLength
	}
	return ShortMaxLength
}

// TextTypeForLength is the inverse of MaxLength for deserialization.
func TextTypeForLength(maxLength int) TextType {
	if maxLength > ShortMaxLength {
		return TextNotes
	}
	return TextShort
}

// PenaltyType selects the deduction arithmetic for penalty fields.
type PenaltyType string

// Penalty variants.
const (
	PenaltyPoints     PenaltyType = "points"
	PenaltyMinorMajor PenaltyType = "minor_major"
	PenaltySplit      PenaltyType = "split"
)

// Fixed deductions for the minor_major penalty variant.
const (
	MinorDeduction = 20
	MajorDeduction = 50
)

// Range is an inclusive integer interval on a scoring scale.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ScaleRanges annotates a scoring_scale field with qualitative bands.
// The bands are judge guidance only; they never alter the numeric score.
type ScaleRanges struct {
	Poor        Range `json:"poor"`
	Average     Range `json:"average"`
	Exceptional Range `json:"exceptional"`
}

// Field is one entry in a template's ordered criteria list. ID is the
// stable lookup key; Order is the display/export position. The two are
// kept separate so reordering never breaks score lookups.
type Field struct {
	ID    string
	Name  string
	Kind  Kind
	Order int
	Info  string // optional help text shown under the field

	// Kind-specific configuration; only the attributes matching Kind
	// are meaningful, the rest stay zero.
	TextType             TextType
	MaxValue             float64 // number: inclusive upper bound
	Options              []string
	PointValue           float64 // scoring_scale max points, or penalty per-violation deduction
	ScaleRanges          *ScaleRanges
	PenaltyType          PenaltyType
	PenaltyValue         float64 // penalty_checkbox flat per-occurrence deduction
	SplitFirstValue      float64
	SplitSubsequentValue float64
	Pause                bool // section_header/label highlighted treatment
}

// IsPenalty reports whether the field contributes deductions.
func (f Field) IsPenalty() bool {
	return f.Kind == KindPenalty || f.Kind == KindPenaltyCheckbox
}

// Scorable reports whether the field can contribute a nonzero amount to
// a sheet total.
func (f Field) Scorable() bool {
	switch f.Kind {
	case KindNumber, KindScoringScale, KindPenalty, KindPenaltyCheckbox:
		return true
	case KindText, KindDropdown, KindSectionHeader, KindLabel, KindCalculated:
		return false
	}
	return false
}

// MaxScore returns the inclusive upper bound for an entered score, or 0
// when the kind has no entry bound.
func (f Field) MaxScore() float64 {
	switch f.Kind {
	case KindNumber:
		return f.MaxValue
	case KindScoringScale:
		return f.PointValue
	case KindText, KindDropdown, KindSectionHeader, KindLabel,
		KindPenalty, KindPenaltyCheckbox, KindCalculated:
		return 0
	}
	return 0
}
