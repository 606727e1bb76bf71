package field

import (
	"encoding/json"
	"fmt"
	"strings"
)

// criterion is the persisted wire shape of one field. Attributes that do
// not apply to the field's type are omitted entirely, keeping the stored
// document minimal and stable.
type criterion struct {
	ID                   string       `json:"id,omitempty"`
	Name                 string       `json:"name"`
	Type                 string       `json:"type"`
	FieldInfo            string       `json:"fieldInfo,omitempty"`
	MaxLength            int          `json:"maxLength,omitempty"`
	MaxValue             float64      `json:"maxValue,omitempty"`
	PointValue           float64      `json:"pointValue,omitempty"`
	PenaltyValue         float64      `json:"penaltyValue,omitempty"`
	PenaltyType          string       `json:"penaltyType,omitempty"`
	SplitFirstValue      float64      `json:"splitFirstValue,omitempty"`
	SplitSubsequentValue float64      `json:"splitSubsequentValue,omitempty"`
	ScaleRanges          *ScaleRanges `json:"scaleRanges,omitempty"`
	Penalty              bool         `json:"penalty,omitempty"`
	Options              []string     `json:"options,omitempty"`
	PauseField           bool         `json:"pauseField,omitempty"`
}

// document is the root persisted template shape: {"criteria":[...]}.
type document struct {
	Criteria []criterion `json:"criteria"`
}

// Marshal serializes an ordered field list to the persisted criteria
// document, projecting only the attributes relevant to each type.
func Marshal(fields []Field) ([]byte, error) {
	doc := document{Criteria: make([]criterion, 0, len(fields))}
	for _, f := range fields {
		doc.Criteria = append(doc.Criteria, project(f))
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal criteria: %w", err)
	}
	return out, nil
}

// MarshalList serializes just the criteria array, for embedding inside a
// larger document.
func MarshalList(fields []Field) ([]byte, error) {
	list := make([]criterion, 0, len(fields))
	for _, f := range fields {
		list = append(list, project(f))
	}
	out, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal criteria list: %w", err)
	}
	return out, nil
}

// UnmarshalList is the inverse of MarshalList.
func UnmarshalList(data []byte) ([]Field, error) {
	var list []criterion
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadCriteria, err)
	}
	fields := make([]Field, 0, len(list))
	for i, c := range list {
		fields = append(fields, restore(i, c))
	}
	return fields, nil
}

func project(f Field) criterion {
	c := criterion{
		ID:        f.ID,
		Name:      f.Name,
		Type:      string(f.Kind),
		FieldInfo: f.Info,
		Penalty:   f.IsPenalty(),
	}
	switch f.Kind {
	case KindText:
		c.MaxLength = f.TextType.MaxLength()
	case KindNumber:
		c.MaxValue = f.MaxValue
	case KindDropdown:
		c.Options = f.Options
	case KindScoringScale:
		c.PointValue = f.PointValue
		c.ScaleRanges = f.ScaleRanges
	case KindPenalty:
		c.PenaltyType = string(f.PenaltyType)
		switch f.PenaltyType {
		case PenaltySplit:
			c.SplitFirstValue = f.SplitFirstValue
			c.SplitSubsequentValue = f.SplitSubsequentValue
		case PenaltyPoints, PenaltyMinorMajor:
			c.PointValue = f.PointValue
		}
	case KindPenaltyCheckbox:
		c.PenaltyValue = f.PenaltyValue
	case KindSectionHeader, KindLabel:
		c.PauseField = f.Pause
	case KindCalculated:
		// Reserved type; nothing beyond name and type persists.
	}
	return c
}

// Unmarshal parses a persisted criteria document back into an ordered
// field list. Fields without an id get a deterministic one derived from
// their position and name, and text types are inferred from maxLength.
func Unmarshal(data []byte) ([]Field, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadCriteria, err)
	}
	fields := make([]Field, 0, len(doc.Criteria))
	for i, c := range doc.Criteria {
		fields = append(fields, restore(i, c))
	}
	return fields, nil
}

func restore(index int, c criterion) Field {
	f := Field{
		ID:    c.ID,
		Name:  c.Name,
		Kind:  Kind(c.Type),
		Order: index,
		Info:  c.FieldInfo,
	}
	if f.ID == "" {
		f.ID = fmt.Sprintf("field_%d_%s", index, Slug(c.Name))
	}
	switch f.Kind {
	case KindText:
		f.TextType = TextTypeForLength(c.MaxLength)
	case KindNumber:
		f.MaxValue = c.MaxValue
	case KindDropdown:
		f.Options = c.Options
	case KindScoringScale:
		f.PointValue = c.PointValue
		f.ScaleRanges = c.ScaleRanges
	case KindPenalty:
		f.PenaltyType = PenaltyType(c.PenaltyType)
		f.PointValue = c.PointValue
		f.SplitFirstValue = c.SplitFirstValue
		f.SplitSubsequentValue = c.SplitSubsequentValue
	case KindPenaltyCheckbox:
		f.PenaltyValue = c.PenaltyValue
	case KindSectionHeader, KindLabel:
		f.Pause = c.PauseField
	case KindCalculated:
		// Reserved type; accepted for forward compatibility.
	}
	return f
}

// Slug lowercases a display name and collapses runs of non-alphanumeric
// characters to single underscores, for use inside generated field ids.
func Slug(name string) string {
	var b strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
