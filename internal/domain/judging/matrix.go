package judging

import (
	"fmt"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// Cell is one judge's entry for one field.
type Cell struct {
	Display string  `json:"display"`
	Number  float64 `json:"number,omitempty"`
	Set     bool    `json:"set"`
	Notes   string  `json:"notes,omitempty"`
}

// Row is one field across all judges, with its average.
type Row struct {
	FieldID string `json:"field_id"`
	Label   string `json:"label"`
	Cells   []Cell `json:"cells"`
	Average string `json:"average"`
}

// Judge is the column header for one scored sheet.
type Judge struct {
	EventID     string   `json:"event_id"`
	JudgeNumber string   `json:"judge_number,omitempty"`
	CadetIDs    []string `json:"cadet_ids,omitempty"`
	CadetNames  []string `json:"cadet_names,omitempty"`
	TeamName    string   `json:"team_name,omitempty"`
	Total       float64  `json:"total_points"`
}

// Matrix is the field-by-judge comparison view model. TemplateMissing
// marks the explicit empty state rendered when the referenced template
// cannot be resolved; consumers must disable saving in that state.
type Matrix struct {
	TemplateID      string  `json:"template_id,omitempty"`
	TemplateName    string  `json:"template_name,omitempty"`
	TemplateMissing bool    `json:"template_missing"`
	Judges          []Judge `json:"judges"`
	Rows            []Row   `json:"rows"`
	TotalAverage    string  `json:"total_average"`
}

// BuildMatrix aligns the events (one per judge) into rows keyed by field
// id. Field labels come from the template when available, otherwise from
// the id itself. A nil template yields the TemplateMissing empty state
// with judge columns but no rows.
func BuildMatrix(events []model.Event, tpl *model.Template) Matrix {
	sorted := SortJudges(events)

	m := Matrix{
		TemplateMissing: tpl == nil,
		TotalAverage:    TotalAverage(sorted),
		Judges:          make([]Judge, 0, len(sorted)),
	}
	for _, e := range sorted {
		m.Judges = append(m.Judges, Judge{
			EventID:     e.ID,
			JudgeNumber: e.Sheet.JudgeNumber,
			CadetIDs:    e.CadetIDs,
			TeamName:    e.TeamName,
			Total:       e.TotalPoints,
		})
	}
	if tpl == nil {
		return m
	}
	m.TemplateID = tpl.ID
	m.TemplateName = tpl.Name

	labels := make(map[string]string, len(tpl.Criteria))
	for _, f := range tpl.Criteria {
		labels[f.ID] = f.Name
	}

	for _, id := range CollectFieldIDs(sorted) {
		row := Row{
			FieldID: id,
			Label:   labels[id],
			Average: FieldAverage(sorted, id),
			Cells:   make([]Cell, 0, len(sorted)),
		}
		if row.Label == "" {
			row.Label = CleanFieldName(id)
		}
		for _, e := range sorted {
			row.Cells = append(row.Cells, cell(e, id))
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

func cell(e model.Event, fieldID string) Cell {
	v, ok := e.Sheet.Scores[fieldID]
	if !ok {
		return Cell{Display: noValue}
	}
	c := Cell{Number: v.Number, Set: v.Set, Notes: v.Notes}
	switch {
	case v.Set:
		c.Display = trimFloat(v.Number)
	case v.Text != "":
		c.Display = v.Text
	default:
		c.Display = noValue
	}
	return c
}

// trimFloat renders whole numbers without a decimal point.
func trimFloat(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
