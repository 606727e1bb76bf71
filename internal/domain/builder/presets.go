package builder

import "github.com/drillmeet/scoresheet/internal/domain/field"

// Built-in competition-type templates. Each is a static ordered field
// list loadable wholesale via LoadPreset.

// PresetNames lists the built-in presets in menu order.
func PresetNames() []string {
	return []string{
		"Air Force Armed Inspection",
		"Unarmed Regulation Drill",
		"Color Guard",
	}
}

// Preset returns the named built-in field list, or false when unknown.
func Preset(name string) ([]field.Field, bool) {
	switch name {
	case "Air Force Armed Inspection":
		return armedInspection(), true
	case "Unarmed Regulation Drill":
		return unarmedRegulation(), true
	case "Color Guard":
		return colorGuard(), true
	}
	return nil, false
}

func scale(poor, avgLo, avgHi, max int) *field.ScaleRanges {
	return &field.ScaleRanges{
		Poor:        field.Range{Min: 1, Max: poor},
		Average:     field.Range{Min: avgLo, Max: avgHi},
		Exceptional: field.Range{Min: avgHi + 1, Max: max},
	}
}

func armedInspection() []field.Field {
	return []field.Field{
		{ID: "field_0_commander_report_in", Name: "Commander Report In", Kind: field.KindScoringScale, Order: 0,
			PointValue: 30, ScaleRanges: scale(6, 7, 24, 30)},
		{ID: "field_1_personal_appearance", Name: "Personal Appearance", Kind: field.KindScoringScale, Order: 1,
			PointValue: 50, ScaleRanges: scale(10, 11, 39, 50),
			Info: "Uniform fit, grooming, and overall bearing of the flight."},
		{ID: "field_2_uniform_knowledge", Name: "Uniform Knowledge Questions", Kind: field.KindScoringScale, Order: 2,
			PointValue: 40, ScaleRanges: scale(8, 9, 31, 40)},
		{ID: "field_3_weapon_handling", Name: "Weapon Handling", Kind: field.KindScoringScale, Order: 3,
			PointValue: 40, ScaleRanges: scale(8, 9, 31, 40)},
		{ID: "field_4_flight_notes", Name: "Flight Notes", Kind: field.KindText, Order: 4, TextType: field.TextNotes},
		{ID: "field_5_penalties", Name: "Penalties", Kind: field.KindSectionHeader, Order: 5, Pause: true},
		{ID: "field_6_boundary_violation", Name: "Boundary Violation", Kind: field.KindPenalty, Order: 6,
			PenaltyType: field.PenaltyPoints, PointValue: 5},
		{ID: "field_7_dropped_weapon", Name: "Dropped Weapon", Kind: field.KindPenalty, Order: 7,
			PenaltyType: field.PenaltySplit, SplitFirstValue: 25, SplitSubsequentValue: 10,
			Info: "First drop 25 points, each additional drop 10 points."},
		{ID: "field_8_uniform_discrepancy", Name: "Uniform Discrepancy", Kind: field.KindPenaltyCheckbox, Order: 8,
			PenaltyValue: 2},
	}
}

func unarmedRegulation() []field.Field {
	return []field.Field{
		{ID: "field_0_report_in", Name: "Report In", Kind: field.KindScoringScale, Order: 0,
			PointValue: 20, ScaleRanges: scale(4, 5, 15, 20)},
		{ID: "field_1_basic_marching", Name: "Basic Marching", Kind: field.KindScoringScale, Order: 1,
			PointValue: 60, ScaleRanges: scale(12, 13, 47, 60)},
		{ID: "field_2_column_movements", Name: "Column Movements", Kind: field.KindScoringScale, Order: 2,
			PointValue: 40, ScaleRanges: scale(8, 9, 31, 40)},
		{ID: "field_3_flanks", Name: "Flanks", Kind: field.KindNumber, Order: 3, MaxValue: 20},
		{ID: "field_4_cadence", Name: "Cadence Quality", Kind: field.KindDropdown, Order: 4,
			Options: []string{"excellent", "good", "fair", "poor"}},
		{ID: "field_5_sequence_notes", Name: "Sequence Notes", Kind: field.KindText, Order: 5, TextType: field.TextShort},
		{ID: "field_6_deductions", Name: "Deductions", Kind: field.KindSectionHeader, Order: 6, Pause: true},
		{ID: "field_7_major_minor", Name: "Command Error", Kind: field.KindPenalty, Order: 7,
			PenaltyType: field.PenaltyMinorMajor,
			Info:        "Minor deducts 20 points, major deducts 50."},
		{ID: "field_8_boundary", Name: "Out of Bounds", Kind: field.KindPenaltyCheckbox, Order: 8, PenaltyValue: 5},
	}
}

func colorGuard() []field.Field {
	return []field.Field{
		{ID: "field_0_presentation", Name: "Presentation of Colors", Kind: field.KindScoringScale, Order: 0,
			PointValue: 50, ScaleRanges: scale(10, 11, 39, 50)},
		{ID: "field_1_flag_handling", Name: "Flag Handling", Kind: field.KindScoringScale, Order: 1,
			PointValue: 40, ScaleRanges: scale(8, 9, 31, 40)},
		{ID: "field_2_alignment", Name: "Alignment and Cover", Kind: field.KindNumber, Order: 2, MaxValue: 30},
		{ID: "field_3_team_name", Name: "Team Name", Kind: field.KindText, Order: 3, TextType: field.TextShort},
		{ID: "field_4_overall_notes", Name: "Overall Notes", Kind: field.KindText, Order: 4, TextType: field.TextNotes},
		{ID: "field_5_flag_touch", Name: "Flag Touches Ground", Kind: field.KindPenalty, Order: 5,
			PenaltyType: field.PenaltyPoints, PointValue: 50},
	}
}
