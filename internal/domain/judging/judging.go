// Package judging aligns multiple judges' scored sheets for the same
// competition event into a field-by-judge comparison with per-field and
// per-judge summary statistics.
package judging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// noValue is rendered when an average has no numeric inputs.
const noValue = "-"

// CollectFieldIDs returns the union of field ids scored in any event,
// ordered by the numeric component of the "field_<N>_..." convention.
// Ids outside the convention sort after all numbered ones.
func CollectFieldIDs(events []model.Event) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, e := range events {
		for id := range e.Sheet.Scores {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		ni, oki := fieldOrdinal(ids[i])
		nj, okj := fieldOrdinal(ids[j])
		switch {
		case oki && okj:
			if ni != nj {
				return ni < nj
			}
			return ids[i] < ids[j]
		case oki:
			return true
		case okj:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

// fieldOrdinal extracts N from ids shaped "field_<N>_...".
func fieldOrdinal(id string) (int64, bool) {
	rest, ok := strings.CutPrefix(id, "field_")
	if !ok {
		return 0, false
	}
	num, _, ok := strings.Cut(rest, "_")
	if !ok {
		num = rest
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CleanFieldName turns a field id into a display label: the
// "field_<N>_" prefix is stripped, underscores become spaces, and each
// word is title-cased. Display-only; never used for lookup.
func CleanFieldName(id string) string {
	name := id
	if rest, ok := strings.CutPrefix(id, "field_"); ok {
		if num, tail, ok := strings.Cut(rest, "_"); ok {
			if _, err := strconv.Atoi(num); err == nil {
				name = tail
			}
		}
	}
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FieldAverage formats the mean of all present numeric entries for one
// field across events, to one decimal place. Missing, text-only, and
// notes-only entries are skipped; with no numeric inputs it returns "-".
func FieldAverage(events []model.Event, fieldID string) string {
	sum, n := 0.0, 0
	for _, e := range events {
		v, ok := e.Sheet.Scores[fieldID]
		if !ok || !v.Set {
			continue
		}
		sum += v.Number
		n++
	}
	if n == 0 {
		return noValue
	}
	return fmt.Sprintf("%.1f", sum/float64(n))
}

// TotalAverage formats the mean of total_points across events to one
// decimal place, or "-" for an empty set.
func TotalAverage(events []model.Event) string {
	if len(events) == 0 {
		return noValue
	}
	sum := 0.0
	for _, e := range events {
		sum += e.TotalPoints
	}
	return fmt.Sprintf("%.1f", sum/float64(len(events)))
}

// SortJudges orders events ascending by the numeric suffix of their
// judge number. Events carrying a judge number sort before those
// without; ties and absences fall back to creation time ascending. The
// input slice is not modified.
func SortJudges(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		ni, oki := judgeOrdinal(out[i].Sheet.JudgeNumber)
		nj, okj := judgeOrdinal(out[j].Sheet.JudgeNumber)
		switch {
		case oki && okj:
			if ni != nj {
				return ni < nj
			}
		case oki:
			return true
		case okj:
			return false
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// judgeOrdinal parses the numeric suffix of a judge label, e.g.
// "Judge 2" -> 2.
func judgeOrdinal(judge string) (int64, bool) {
	start := -1
	for i := len(judge) - 1; i >= 0; i-- {
		if judge[i] < '0' || judge[i] > '9' {
			break
		}
		start = i
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(judge[start:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
