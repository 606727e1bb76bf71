package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	repository "github.com/drillmeet/scoresheet/internal/adapters/repository"
	app "github.com/drillmeet/scoresheet/internal/app"
	"github.com/drillmeet/scoresheet/internal/directory"
	field "github.com/drillmeet/scoresheet/internal/domain/field"
	model "github.com/drillmeet/scoresheet/internal/domain/model"
	scoring "github.com/drillmeet/scoresheet/internal/domain/scoring"
	"github.com/drillmeet/scoresheet/internal/gen"
	"github.com/drillmeet/scoresheet/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func inspectionTemplate() model.Template {
	return model.Template{
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
			{ID: "field_1_marching", Name: "Marching", Kind: field.KindNumber, Order: 1, MaxValue: 20},
			{ID: "field_2_dropped", Name: "Dropped Rifle", Kind: field.KindPenalty, Order: 2,
				PenaltyType: field.PenaltyPoints, PointValue: 5},
		},
	}
}

func startedService(opts ...app.Option) *app.Service {
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestServiceTemplates(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService()
		defer svc.Stop()

		Convey("When a valid template is saved without an id", func() {
			saved, err := svc.SaveTemplate(ctx, model.Template{
				Name:     "Armed Inspection",
				Criteria: inspectionTemplate().Criteria,
			})

			Convey("Then an id is minted and the stored copy is returned", func() {
				So(err, ShouldBeNil)
				So(saved.ID, ShouldNotBeEmpty)
				So(saved.CreatedAt.IsZero(), ShouldBeFalse)
				So(len(saved.Criteria), ShouldEqual, 3)
			})
		})

		Convey("When a template with invalid criteria is saved", func() {
			_, err := svc.SaveTemplate(ctx, model.Template{
				Name: "Broken",
				Criteria: []field.Field{
					{ID: "field_0_x", Name: "X", Kind: field.KindNumber},
				},
			})

			Convey("Then the save is blocked", func() {
				So(errors.Is(err, field.ErrInvalidField), ShouldBeTrue)
			})
		})

		Convey("When templates are listed and deleted", func() {
			saved, err := svc.SaveTemplate(ctx, inspectionTemplate())
			So(err, ShouldBeNil)

			list, err := svc.ListTemplates(ctx)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 1)

			So(svc.DeleteTemplate(ctx, saved.ID), ShouldBeNil)
			_, err = svc.GetTemplate(ctx, saved.ID)

			Convey("Then the deleted template is gone", func() {
				So(errors.Is(err, repository.ErrTemplateNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceEvents(t *testing.T) {
	Convey("Given a started service with a stored template", t, func() {
		ctx := context.Background()
		svc := startedService()
		defer svc.Stop()

		tpl, err := svc.SaveTemplate(ctx, inspectionTemplate())
		So(err, ShouldBeNil)

		submit := func(judge string, scores map[string]scoring.Value) (model.Event, error) {
			return svc.CreateEvent(ctx, model.Event{
				Competition: "comp-1",
				School:      "school-9",
				EventType:   "armed_inspection",
				CadetIDs:    []string{"cadet-1"},
				Sheet: model.ScoreSheet{
					TemplateID:  tpl.ID,
					JudgeNumber: judge,
					Scores:      scores,
				},
			})
		}

		Convey("When a judge 1 sheet is submitted", func() {
			created, err := submit("Judge 1", map[string]scoring.Value{
				"field_0_report_in": scoring.Num(25),
				"field_1_marching":  scoring.Num(15),
				"field_2_dropped":   scoring.Num(2),
			})

			Convey("Then the total is recomputed server side", func() {
				So(err, ShouldBeNil)
				So(created.ID, ShouldNotBeEmpty)
				So(created.TotalPoints, ShouldEqual, 30)
				So(created.Sheet.TemplateName, ShouldEqual, "Armed Inspection")
				So(created.Sheet.CalculatedAt.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When a judge 2 sheet carries penalty entries", func() {
			created, err := submit("Judge 2", map[string]scoring.Value{
				"field_0_report_in": scoring.Num(25),
				"field_2_dropped":   scoring.Num(2),
			})

			Convey("Then the penalty entries are dropped from the sheet", func() {
				So(err, ShouldBeNil)
				So(created.TotalPoints, ShouldEqual, 25)
				So(created.Sheet.Scores["field_2_dropped"].Set, ShouldBeFalse)
			})
		})

		Convey("When a sheet carries an out-of-range score", func() {
			created, err := submit("Judge 1", map[string]scoring.Value{
				"field_1_marching": scoring.Num(35),
			})

			Convey("Then the write is rejected and the total excludes it", func() {
				So(err, ShouldBeNil)
				So(created.TotalPoints, ShouldEqual, 0)
				So(created.Sheet.Scores["field_1_marching"].Set, ShouldBeFalse)
			})
		})

		Convey("When a sheet references a missing template", func() {
			_, err := svc.CreateEvent(ctx, model.Event{
				EventType: "armed_inspection",
				Sheet:     model.ScoreSheet{TemplateID: "missing"},
			})

			Convey("Then the save is blocked", func() {
				So(errors.Is(err, repository.ErrTemplateNotFound), ShouldBeTrue)
			})
		})

		Convey("When an event is edited", func() {
			created, err := submit("Judge 1", map[string]scoring.Value{
				"field_0_report_in": scoring.Num(20),
			})
			So(err, ShouldBeNil)

			updated, err := svc.UpdateEvent(ctx, created.ID, model.EventPatch{
				Scores: map[string]scoring.Value{
					"field_0_report_in": scoring.Num(28),
					"field_1_marching":  scoring.Num(12),
				},
				TeamName: "Alpha Flight",
			})

			Convey("Then scores are replaced and the total recomputed", func() {
				So(err, ShouldBeNil)
				So(updated.TotalPoints, ShouldEqual, 40)
				So(updated.TeamName, ShouldEqual, "Alpha Flight")
				So(updated.Sheet.CalculatedAt.After(created.Sheet.CalculatedAt) ||
					updated.Sheet.CalculatedAt.Equal(created.Sheet.CalculatedAt), ShouldBeTrue)
			})
		})
	})
}

func TestServiceMatrix(t *testing.T) {
	Convey("Given three judges' sheets for one event type", t, func() {
		ctx := context.Background()
		svc := startedService(app.WithDirectory(directory.NewInMemoryDirectory(map[string]string{
			"cadet-1": "Jordan Reyes",
		})))
		defer svc.Stop()

		tpl, err := svc.SaveTemplate(ctx, inspectionTemplate())
		So(err, ShouldBeNil)

		for i, judge := range []string{"Judge 2", "Judge 1", "Judge 3"} {
			_, err := svc.CreateEvent(ctx, model.Event{
				ID:          "evt-" + judge,
				Competition: "comp-1",
				EventType:   "armed_inspection",
				CadetIDs:    []string{"cadet-1"},
				Sheet: model.ScoreSheet{
					TemplateID:  tpl.ID,
					JudgeNumber: judge,
					Scores: map[string]scoring.Value{
						"field_0_report_in": scoring.Num(float64(20 + i)),
					},
				},
			})
			So(err, ShouldBeNil)
		}

		Convey("When the matrix is built", func() {
			m, err := svc.Matrix(ctx, model.Filter{Competition: "comp-1", EventType: "armed_inspection"})

			Convey("Then judges appear in numeric order with resolved names", func() {
				So(err, ShouldBeNil)
				So(m.TemplateMissing, ShouldBeFalse)
				So(len(m.Judges), ShouldEqual, 3)
				So(m.Judges[0].JudgeNumber, ShouldEqual, "Judge 1")
				So(m.Judges[2].JudgeNumber, ShouldEqual, "Judge 3")
				So(m.Judges[0].CadetNames, ShouldResemble, []string{"Jordan Reyes"})
			})

			Convey("Then the report-in row averages across judges", func() {
				So(err, ShouldBeNil)
				So(len(m.Rows), ShouldEqual, 1)
				So(m.Rows[0].FieldID, ShouldEqual, "field_0_report_in")
				So(m.Rows[0].Average, ShouldEqual, "21.0")
			})
		})

		Convey("When the referenced template has been deleted", func() {
			So(svc.DeleteTemplate(ctx, tpl.ID), ShouldBeNil)
			m, err := svc.Matrix(ctx, model.Filter{Competition: "comp-1"})

			Convey("Then the explicit empty state is returned", func() {
				So(err, ShouldBeNil)
				So(m.TemplateMissing, ShouldBeTrue)
				So(len(m.Judges), ShouldEqual, 3)
				So(m.Rows, ShouldBeEmpty)
			})
		})
	})
}

type stubGenerator struct {
	result gen.Result
	err    error
}

func (s stubGenerator) Generate(_ context.Context, _ string) (gen.Result, error) {
	return s.result, s.err
}

func TestServiceGenerate(t *testing.T) {
	Convey("Given template generation", t, func() {
		ctx := context.Background()

		Convey("When no generator is configured", func() {
			svc := startedService()
			defer svc.Stop()

			_, err := svc.GenerateTemplate(ctx, "inspection rubric text")

			Convey("Then the feature reports itself disabled", func() {
				So(errors.Is(err, app.ErrGeneratorDisabled), ShouldBeTrue)
			})
		})

		Convey("When the generator returns valid criteria", func() {
			doc := json.RawMessage(`{"criteria":[
				{"name":"Report In","type":"scoring_scale","pointValue":30,
				 "scaleRanges":{"poor":{"min":1,"max":6},"average":{"min":7,"max":24},"exceptional":{"min":25,"max":30}}}
			]}`)
			svc := startedService(app.WithGenerator(stubGenerator{
				result: gen.Result{Success: true, Template: doc},
			}))
			defer svc.Stop()

			res, err := svc.GenerateTemplate(ctx, "inspection rubric text")

			Convey("Then the canonical document is returned", func() {
				So(err, ShouldBeNil)
				So(res.Success, ShouldBeTrue)

				fields, err := field.Unmarshal(res.Template)
				So(err, ShouldBeNil)
				So(len(fields), ShouldEqual, 1)
				So(fields[0].ID, ShouldEqual, "field_0_report_in")
			})
		})

		Convey("When the generator returns invalid criteria", func() {
			doc := json.RawMessage(`{"criteria":[{"name":"","type":"text"}]}`)
			svc := startedService(app.WithGenerator(stubGenerator{
				result: gen.Result{Success: true, Template: doc},
			}))
			defer svc.Stop()

			res, err := svc.GenerateTemplate(ctx, "inspection rubric text")

			Convey("Then the refusal is reported in the result body", func() {
				So(err, ShouldBeNil)
				So(res.Success, ShouldBeFalse)
				So(res.Error, ShouldNotBeEmpty)
			})
		})

		Convey("When the generator itself refuses", func() {
			svc := startedService(app.WithGenerator(stubGenerator{
				result: gen.Result{Success: false, Error: "document too short"},
			}))
			defer svc.Stop()

			res, err := svc.GenerateTemplate(ctx, "x")

			Convey("Then the refusal passes through", func() {
				So(err, ShouldBeNil)
				So(res.Success, ShouldBeFalse)
				So(res.Error, ShouldEqual, "document too short")
			})
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a started service with content", t, func() {
		ctx := context.Background()
		svc := startedService(app.WithClock(func() time.Time {
			return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
		}))
		defer svc.Stop()

		tpl, err := svc.SaveTemplate(ctx, inspectionTemplate())
		So(err, ShouldBeNil)
		_, err = svc.CreateEvent(ctx, model.Event{
			EventType: "armed_inspection",
			Sheet:     model.ScoreSheet{TemplateID: tpl.ID, JudgeNumber: "Judge 1"},
		})
		So(err, ShouldBeNil)

		Convey("When stats are requested", func() {
			stats := svc.GetStats()

			Convey("Then counts reflect the stored content", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["totalTemplates"], ShouldEqual, 1)
				So(stats["totalEvents"], ShouldEqual, 1)
			})
		})
	})
}
