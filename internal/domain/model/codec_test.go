package model_test

import (
	"encoding/json"
	"testing"
	"time"

	field "github.com/drillmeet/scoresheet/internal/domain/field"
	model "github.com/drillmeet/scoresheet/internal/domain/model"
	scoring "github.com/drillmeet/scoresheet/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTemplateCodec(t *testing.T) {
	Convey("Given a template with criteria", t, func() {
		tpl := model.Template{
			ID:        "tpl-1",
			Name:      "Armed Inspection",
			EventType: "armed_inspection",
			Criteria: []field.Field{
				{ID: "field_0_report_in", Name: "Report In", Kind: field.KindScoringScale, Order: 0,
					PointValue: 30, ScaleRanges: &field.ScaleRanges{
						Poor:        field.Range{Min: 1, Max: 6},
						Average:     field.Range{Min: 7, Max: 24},
						Exceptional: field.Range{Min: 25, Max: 30},
					}},
				{ID: "field_1_notes", Name: "Notes", Kind: field.KindText, Order: 1, TextType: field.TextNotes},
			},
			CreatedAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		}

		Convey("When it round-trips through JSON", func() {
			data, err := json.Marshal(tpl)
			So(err, ShouldBeNil)

			var restored model.Template
			So(json.Unmarshal(data, &restored), ShouldBeNil)

			Convey("Then identity and criteria survive", func() {
				So(restored.ID, ShouldEqual, tpl.ID)
				So(restored.Name, ShouldEqual, tpl.Name)
				So(restored.EventType, ShouldEqual, tpl.EventType)
				So(len(restored.Criteria), ShouldEqual, 2)
				So(restored.Criteria[0].ID, ShouldEqual, "field_0_report_in")
				So(restored.Criteria[0].PointValue, ShouldEqual, 30)
				So(restored.Criteria[1].TextType, ShouldEqual, field.TextNotes)
			})
		})

		Convey("When the wire shape is inspected", func() {
			data, err := json.Marshal(tpl)
			So(err, ShouldBeNil)

			var wire map[string]json.RawMessage
			So(json.Unmarshal(data, &wire), ShouldBeNil)

			Convey("Then criteria is a bare array", func() {
				So(string(wire["criteria"][0]), ShouldEqual, "[")
			})
		})
	})
}

func TestScoreSheetCodec(t *testing.T) {
	Convey("Given a scored sheet with notes", t, func() {
		sheet := model.ScoreSheet{
			TemplateID:   "tpl-1",
			TemplateName: "Armed Inspection",
			JudgeNumber:  "Judge 1",
			Scores: map[string]scoring.Value{
				"field_0_report_in": {Number: 25, Set: true, Notes: "crisp report"},
				"field_1_category":  scoring.Str("Varsity"),
				"field_2_silent":    {Notes: "notes only"},
			},
			CalculatedAt: time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC),
		}

		Convey("When it is marshaled", func() {
			data, err := json.Marshal(sheet)
			So(err, ShouldBeNil)

			var wire struct {
				Scores map[string]any `json:"scores"`
			}
			So(json.Unmarshal(data, &wire), ShouldBeNil)

			Convey("Then notes flatten to sibling keys in the scores map", func() {
				So(wire.Scores["field_0_report_in"], ShouldEqual, 25.0)
				So(wire.Scores["field_0_report_in_notes"], ShouldEqual, "crisp report")
				So(wire.Scores["field_1_category"], ShouldEqual, "Varsity")
				So(wire.Scores["field_2_silent_notes"], ShouldEqual, "notes only")
				_, hasPrimary := wire.Scores["field_2_silent"]
				So(hasPrimary, ShouldBeFalse)
			})
		})

		Convey("When it round-trips through JSON", func() {
			data, err := json.Marshal(sheet)
			So(err, ShouldBeNil)

			var restored model.ScoreSheet
			So(json.Unmarshal(data, &restored), ShouldBeNil)

			Convey("Then notes fold back onto their structured entries", func() {
				So(restored.JudgeNumber, ShouldEqual, "Judge 1")
				So(restored.Scores["field_0_report_in"].Number, ShouldEqual, 25)
				So(restored.Scores["field_0_report_in"].Set, ShouldBeTrue)
				So(restored.Scores["field_0_report_in"].Notes, ShouldEqual, "crisp report")
				So(restored.Scores["field_1_category"].Text, ShouldEqual, "Varsity")
				So(restored.Scores["field_2_silent"].Notes, ShouldEqual, "notes only")
			})
		})
	})
}

func TestDecodeScores(t *testing.T) {
	Convey("Given a flat untyped scores map", t, func() {
		raw := map[string]any{
			"field_0_report_in":       22.0,
			"field_0_report_in_notes": "solid",
			"field_1_category":        "Varsity",
			"field_2_count":           "3",
			"field_9_orphaned_notes":  "no primary entry",
		}

		Convey("When it is decoded", func() {
			scores := model.DecodeScores(raw)

			Convey("Then entries are typed and notes are folded", func() {
				So(scores["field_0_report_in"].Number, ShouldEqual, 22)
				So(scores["field_0_report_in"].Notes, ShouldEqual, "solid")
				So(scores["field_1_category"].Text, ShouldEqual, "Varsity")
				So(scores["field_2_count"].Number, ShouldEqual, 3)
				So(scores["field_2_count"].Set, ShouldBeTrue)
				So(scores["field_9_orphaned"].Notes, ShouldEqual, "no primary entry")
			})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given an event listing filter", t, func() {
		e := model.Event{Competition: "comp-1", School: "school-9", EventType: "color_guard"}

		Convey("When keys are set", func() {
			So(model.Filter{Competition: "comp-1"}.Matches(e), ShouldBeTrue)
			So(model.Filter{Competition: "comp-2"}.Matches(e), ShouldBeFalse)
			So(model.Filter{School: "school-9", EventType: "color_guard"}.Matches(e), ShouldBeTrue)
			So(model.Filter{EventType: "armed_inspection"}.Matches(e), ShouldBeFalse)
		})

		Convey("When no keys are set", func() {
			So(model.Filter{}.Matches(e), ShouldBeTrue)
		})
	})
}
