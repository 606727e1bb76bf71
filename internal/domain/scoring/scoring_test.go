package scoring_test

import (
	"testing"

	field "github.com/drillmeet/scoresheet/internal/domain/field"
	scoring "github.com/drillmeet/scoresheet/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestContribution(t *testing.T) {
	Convey("Given per-kind contribution arithmetic", t, func() {
		Convey("When a number field is scored", func() {
			f := field.Field{ID: "field_0_marching", Kind: field.KindNumber, MaxValue: 20}

			Convey("Then in-range values pass through", func() {
				So(scoring.Contribution(f, scoring.Num(15)), ShouldEqual, 15)
			})

			Convey("Then values above the max are clamped to it", func() {
				So(scoring.Contribution(f, scoring.Num(35)), ShouldEqual, 20)
			})

			Convey("Then negative values are clamped to zero", func() {
				So(scoring.Contribution(f, scoring.Num(-5)), ShouldEqual, 0)
			})

			Convey("Then an absent entry contributes nothing", func() {
				So(scoring.Contribution(f, scoring.Value{}), ShouldEqual, 0)
			})
		})

		Convey("When a scoring scale is scored", func() {
			f := field.Field{ID: "field_0_appearance", Kind: field.KindScoringScale, PointValue: 50}

			Convey("Then values are clamped to [0, pointValue]", func() {
				So(scoring.Contribution(f, scoring.Num(42)), ShouldEqual, 42)
				So(scoring.Contribution(f, scoring.Num(60)), ShouldEqual, 50)
				So(scoring.Contribution(f, scoring.Num(-1)), ShouldEqual, 0)
			})
		})

		Convey("When a points penalty is scored", func() {
			f := field.Field{ID: "field_6_boundary", Kind: field.KindPenalty,
				PenaltyType: field.PenaltyPoints, PointValue: 5}

			Convey("Then each violation deducts the point value", func() {
				So(scoring.Contribution(f, scoring.Num(3)), ShouldEqual, -15)
			})

			Convey("Then zero violations deduct nothing", func() {
				So(scoring.Contribution(f, scoring.Num(0)), ShouldEqual, 0)
			})

			Convey("Then a negative configured value deducts the same magnitude", func() {
				neg := f
				neg.PointValue = -5
				So(scoring.Contribution(neg, scoring.Num(3)), ShouldEqual, -15)
			})
		})

		Convey("When a split penalty is scored", func() {
			f := field.Field{ID: "field_7_dropped", Kind: field.KindPenalty,
				PenaltyType: field.PenaltySplit, SplitFirstValue: 25, SplitSubsequentValue: 10}

			Convey("Then the first occurrence costs the first value", func() {
				So(scoring.Contribution(f, scoring.Num(1)), ShouldEqual, -25)
			})

			Convey("Then each further occurrence costs the subsequent value", func() {
				So(scoring.Contribution(f, scoring.Num(3)), ShouldEqual, -45)
			})

			Convey("Then no occurrences cost nothing", func() {
				So(scoring.Contribution(f, scoring.Num(0)), ShouldEqual, 0)
				So(scoring.Contribution(f, scoring.Value{}), ShouldEqual, 0)
			})
		})

		Convey("When a minor/major penalty is scored", func() {
			f := field.Field{ID: "field_5_uniform", Kind: field.KindPenalty,
				PenaltyType: field.PenaltyMinorMajor}

			Convey("Then minor deducts 20 and major deducts 50", func() {
				So(scoring.Contribution(f, scoring.Str("minor")), ShouldEqual, -20)
				So(scoring.Contribution(f, scoring.Str("major")), ShouldEqual, -50)
			})

			Convey("Then any other selection deducts nothing", func() {
				So(scoring.Contribution(f, scoring.Str("none")), ShouldEqual, 0)
				So(scoring.Contribution(f, scoring.Value{}), ShouldEqual, 0)
			})
		})

		Convey("When a penalty checkbox is scored", func() {
			f := field.Field{ID: "field_8_discrepancy", Kind: field.KindPenaltyCheckbox, PenaltyValue: 2}

			Convey("Then each occurrence deducts the flat value", func() {
				So(scoring.Contribution(f, scoring.Num(4)), ShouldEqual, -8)
			})
		})

		Convey("When display-only fields carry values", func() {
			Convey("Then they never contribute", func() {
				So(scoring.Contribution(field.Field{Kind: field.KindText}, scoring.Str("notes")), ShouldEqual, 0)
				So(scoring.Contribution(field.Field{Kind: field.KindDropdown}, scoring.Str("Varsity")), ShouldEqual, 0)
				So(scoring.Contribution(field.Field{Kind: field.KindSectionHeader}, scoring.Num(10)), ShouldEqual, 0)
				So(scoring.Contribution(field.Field{Kind: field.KindLabel}, scoring.Num(10)), ShouldEqual, 0)
				So(scoring.Contribution(field.Field{Kind: field.KindCalculated}, scoring.Num(10)), ShouldEqual, 0)
			})
		})
	})
}

func TestComputeTotal(t *testing.T) {
	Convey("Given the clamped sheet total", t, func() {
		fields := []field.Field{
			{ID: "field_0_appearance", Kind: field.KindScoringScale, PointValue: 50},
			{ID: "field_1_marching", Kind: field.KindNumber, MaxValue: 40},
			{ID: "field_2_dropped", Kind: field.KindPenalty,
				PenaltyType: field.PenaltySplit, SplitFirstValue: 25, SplitSubsequentValue: 10},
		}

		Convey("When scores outweigh penalties", func() {
			values := map[string]scoring.Value{
				"field_0_appearance": scoring.Num(45),
				"field_1_marching":   scoring.Num(30),
				"field_2_dropped":    scoring.Num(2),
			}

			Convey("Then the total is the signed sum", func() {
				So(scoring.ComputeTotal(fields, values), ShouldEqual, 40)
			})
		})

		Convey("When penalties outweigh scores", func() {
			values := map[string]scoring.Value{
				"field_0_appearance": scoring.Num(5),
				"field_2_dropped":    scoring.Num(4),
			}

			Convey("Then the total clamps to zero", func() {
				So(scoring.ComputeTotal(fields, values), ShouldEqual, 0)
			})
		})

		Convey("When nothing is entered", func() {
			Convey("Then the total is zero", func() {
				So(scoring.ComputeTotal(fields, nil), ShouldEqual, 0)
			})
		})

		Convey("When the same inputs are computed twice", func() {
			values := map[string]scoring.Value{"field_1_marching": scoring.Num(30)}

			Convey("Then the results are identical", func() {
				So(scoring.ComputeTotal(fields, values), ShouldEqual, scoring.ComputeTotal(fields, values))
			})
		})
	})
}

func TestCoerce(t *testing.T) {
	Convey("Given untyped wire scores", t, func() {
		Convey("When the input is numeric", func() {
			So(scoring.Coerce(42.5), ShouldResemble, scoring.Num(42.5))
			So(scoring.Coerce("17"), ShouldResemble, scoring.Num(17))
			So(scoring.Coerce(true), ShouldResemble, scoring.Num(1))
		})

		Convey("When the input is text", func() {
			So(scoring.Coerce("minor"), ShouldResemble, scoring.Str("minor"))
		})

		Convey("When the input is empty or unparseable", func() {
			So(scoring.Coerce(nil).Zero(), ShouldBeTrue)
			So(scoring.Coerce("   ").Zero(), ShouldBeTrue)
			So(scoring.Coerce([]string{"x"}).Zero(), ShouldBeTrue)
		})
	})
}
