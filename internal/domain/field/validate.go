package field

import "strings"

// Validate checks the structural validity of a single field. It returns
// nil or an *InvalidFieldError; it never inspects entered values.
func Validate(f Field) error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid(f, "name must not be empty")
	}
	if !f.Kind.Known() {
		return invalid(f, "unknown type "+string(f.Kind))
	}

	switch f.Kind {
	case KindScoringScale:
		if f.ScaleRanges == nil {
			return invalid(f, "scoring_scale requires scaleRanges")
		}
		return validateScale(f, *f.ScaleRanges)
	case KindDropdown:
		if len(f.Options) == 0 {
			return invalid(f, "dropdown requires at least one option")
		}
	case KindNumber:
		if f.MaxValue <= 0 {
			return invalid(f, "number requires maxValue > 0")
		}
	case KindText, KindSectionHeader, KindLabel, KindPenalty,
		KindPenaltyCheckbox, KindCalculated:
		// No structural constraints beyond the name.
	}
	return nil
}

// validateScale enforces non-overlapping, ascending poor/average/
// exceptional bands.
func validateScale(f Field, r ScaleRanges) error {
	for _, band := range []Range{r.Poor, r.Average, r.Exceptional} {
		if band.Min > band.Max {
			return invalid(f, "scale range min exceeds max")
		}
	}
	if r.Poor.Max >= r.Average.Min {
		return invalid(f, "poor and average ranges overlap")
	}
	if r.Average.Max >= r.Exceptional.Min {
		return invalid(f, "average and exceptional ranges overlap")
	}
	return nil
}

// ValidateAll validates every field and checks id uniqueness across the
// list. The first failure is returned.
func ValidateAll(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if err := Validate(f); err != nil {
			return err
		}
		if f.ID == "" {
			return invalid(f, "id must not be empty")
		}
		if _, dup := seen[f.ID]; dup {
			return invalid(f, "duplicate id")
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
