package overload

import (
	"fmt"
	"strconv"
)

// FormatSetsReps renders "4x8-10", "4x8" or "4 sets".
func FormatSetsReps(setCount int, repMin, repMax *int) string {
	switch {
	case repMin != nil && repMax != nil && *repMin != *repMax:
		return fmt.Sprintf("%dx%d-%d", setCount, *repMin, *repMax)
	case repMin != nil:
		return fmt.Sprintf("%dx%d", setCount, *repMin)
	case repMax != nil:
		return fmt.Sprintf("%dx%d", setCount, *repMax)
	default:
		return fmt.Sprintf("%d sets", setCount)
	}
}

// FormatWeight renders "102.5kg", or "" when no weight is planned.
func FormatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return formatNumber(*w) + "kg"
}

// FormatRPE renders "RPE 8.5", or "" when no RPE is planned.
func FormatRPE(r *float64) string {
	if r == nil {
		return ""
	}
	return "RPE " + formatNumber(*r)
}

// SetsReps is FormatSetsReps applied to the projection.
func (p Projection) SetsReps() string {
	return FormatSetsReps(p.SetCount, p.RepMin, p.RepMax)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
