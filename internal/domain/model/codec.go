package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/drillmeet/scoresheet/internal/domain/field"
	"github.com/drillmeet/scoresheet/internal/domain/scoring"
)

// notesSuffix is the wire convention for notes: a sibling string key
// "<fieldId>_notes" inside the flat scores map. In memory, notes live on
// the structured scoring.Value instead; this codec converts at the
// boundary so the persisted contract stays stable.
const notesSuffix = "_notes"

// templateWire mirrors the persisted template JSON contract, with the
// criteria array embedded via the field codec.
type templateWire struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	EventType string          `json:"event,omitempty"`
	Criteria  json.RawMessage `json:"criteria"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarshalJSON embeds the projected criteria array in the template body.
func (t Template) MarshalJSON() ([]byte, error) {
	criteria, err := field.MarshalList(t.Criteria)
	if err != nil {
		return nil, err
	}
	return json.Marshal(templateWire{
		ID:        t.ID,
		Name:      t.Name,
		EventType: t.EventType,
		Criteria:  criteria,
		CreatedAt: t.CreatedAt,
	})
}

// UnmarshalJSON restores the ordered field list from the criteria array.
func (t *Template) UnmarshalJSON(data []byte) error {
	var w templateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.ID = w.ID
	t.Name = w.Name
	t.EventType = w.EventType
	t.CreatedAt = w.CreatedAt
	if len(w.Criteria) > 0 {
		fields, err := field.UnmarshalList(w.Criteria)
		if err != nil {
			return err
		}
		t.Criteria = fields
	}
	return nil
}

// sheetWire mirrors the persisted score_sheet JSON contract.
type sheetWire struct {
	TemplateID   string         `json:"template_id"`
	TemplateName string         `json:"template_name"`
	JudgeNumber  string         `json:"judge_number,omitempty"`
	Scores       map[string]any `json:"scores"`
	CalculatedAt time.Time      `json:"calculated_at"`
}

// MarshalJSON flattens the structured values into the wire scores map.
func (s ScoreSheet) MarshalJSON() ([]byte, error) {
	w := sheetWire{
		TemplateID:   s.TemplateID,
		TemplateName: s.TemplateName,
		JudgeNumber:  s.JudgeNumber,
		Scores:       make(map[string]any, len(s.Scores)),
		CalculatedAt: s.CalculatedAt,
	}
	for id, v := range s.Scores {
		if wire := v.Wire(); wire != nil {
			w.Scores[id] = wire
		}
		if v.Notes != "" {
			w.Scores[id+notesSuffix] = v.Notes
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds structured values from the flat wire map,
// folding "<fieldId>_notes" keys back onto their primary entry.
func (s *ScoreSheet) UnmarshalJSON(data []byte) error {
	var w sheetWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.TemplateID = w.TemplateID
	s.TemplateName = w.TemplateName
	s.JudgeNumber = w.JudgeNumber
	s.CalculatedAt = w.CalculatedAt
	s.Scores = DecodeScores(w.Scores)
	return nil
}

// DecodeScores converts an untyped flat scores map (wire or API input)
// into structured values keyed by field id. Notes keys are folded onto
// their primary entry even when the primary entry is absent.
func DecodeScores(raw map[string]any) map[string]scoring.Value {
	out := make(map[string]scoring.Value, len(raw))
	for key, val := range raw {
		if id, ok := strings.CutSuffix(key, notesSuffix); ok && id != "" {
			v := out[id]
			if notes, ok := val.(string); ok {
				v.Notes = notes
			}
			out[id] = v
			continue
		}
		v := scoring.Coerce(val)
		v.Notes = out[key].Notes
		out[key] = v
	}
	return out
}
