// Package model contains the persisted domain shapes passed between
// layers: score-sheet templates and competition events (one judge's
// scored instance of a template).
package model

import (
	"time"

	"github.com/drillmeet/scoresheet/internal/domain/field"
	"github.com/drillmeet/scoresheet/internal/domain/scoring"
)

// Template is a named, ordered list of scoring fields. Its JSON codec
// lives in codec.go and embeds the criteria array in the persisted
// contract shape.
type Template struct {
	ID        string
	Name      string
	EventType string
	Criteria  []field.Field
	CreatedAt time.Time
}

// ScoreSheet is one judge's entered values for a template.
type ScoreSheet struct {
	TemplateID   string
	TemplateName string
	JudgeNumber  string
	Scores       map[string]scoring.Value
	CalculatedAt time.Time
}

// Event is one judge's completed score sheet for one competitor or team
// at one competition event.
type Event struct {
	ID          string     `json:"id"`
	Competition string     `json:"competition_id,omitempty"`
	School      string     `json:"school_id,omitempty"`
	EventType   string     `json:"event"`
	CadetIDs    []string   `json:"cadet_ids"`
	TeamName    string     `json:"team_name,omitempty"`
	Sheet       ScoreSheet `json:"score_sheet"`
	TotalPoints float64    `json:"total_points"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EventPatch carries the fields the edit path may overwrite on a scored
// instance. Nil slices/maps leave the stored value untouched. Total
// points are never patchable; they are recomputed on every edit.
type EventPatch struct {
	Scores   map[string]scoring.Value
	CadetIDs []string
	TeamName string
}

// Filter narrows event listings. Zero-value keys match everything.
type Filter struct {
	Competition string
	School      string
	EventType   string
}

// Matches reports whether the event satisfies every set filter key.
func (f Filter) Matches(e Event) bool {
	if f.Competition != "" && f.Competition != e.Competition {
		return false
	}
	if f.School != "" && f.School != e.School {
		return false
	}
	if f.EventType != "" && f.EventType != e.EventType {
		return false
	}
	return true
}
