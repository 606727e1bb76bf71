package scoring

import (
	"math"

	"github.com/drillmeet/scoresheet/internal/domain/field"
)

// ComputeTotal sums every field's contribution in list order and clamps
// the result to a minimum of 0. This is the single clamping point:
// individual contributions and intermediate sums may go negative, the
// returned total never does. Pure: same inputs, same output.
func ComputeTotal(fields []field.Field, values map[string]Value) float64 {
	total := 0.0
	for _, f := range fields {
		total += Contribution(f, values[f.ID])
	}
	return math.Max(0, total)
}

// Contribution computes one field's unclamped addend. Deduction
// magnitudes use the absolute configured value so schemas that store
// penalties as negative numbers deduct the same as positive ones.
func Contribution(f field.Field, v Value) float64 {
	switch f.Kind {
	case field.KindNumber:
		if !v.Set {
			return 0
		}
		score := math.Max(0, v.Number)
		if f.MaxValue > 0 {
			score = math.Min(score, f.MaxValue)
		}
		return score

	case field.KindScoringScale:
		if !v.Set {
			return 0
		}
		return math.Min(math.Max(0, v.Number), f.PointValue)

	case field.KindPenalty:
		return penaltyContribution(f, v)

	case field.KindPenaltyCheckbox:
		if !v.Set || v.Number <= 0 {
			return 0
		}
		return -v.Number * math.Abs(f.PenaltyValue)

	case field.KindText, field.KindDropdown, field.KindSectionHeader,
		field.KindLabel, field.KindCalculated:
		return 0
	}
	return 0
}

func penaltyContribution(f field.Field, v Value) float64 {
	switch f.PenaltyType {
	case field.PenaltyPoints:
		if !v.Set || v.Number <= 0 {
			return 0
		}
		return -v.Number * math.Abs(f.PointValue)

	case field.PenaltySplit:
		// v.Number is the total occurrence count: the first occurrence
		// deducts SplitFirstValue, every further one SplitSubsequentValue.
		if !v.Set || v.Number < 1 {
			return 0
		}
		extra := math.Max(0, v.Number-1)
		return -(math.Abs(f.SplitFirstValue) + extra*math.Abs(f.SplitSubsequentValue))

	case field.PenaltyMinorMajor:
		switch v.Text {
		case "minor":
			return -field.MinorDeduction
		case "major":
			return -field.MajorDeduction
		}
		return 0
	}
	return 0
}
