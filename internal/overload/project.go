package overload

import (
	"fmt"
	"math"
)

// MaxRPE is the top of the perceived-exertion scale.
const MaxRPE = 10.0

// Baseline is the fixed reference an exercise progresses from: the planned
// values of its first working set plus the number of working sets.
type Baseline struct {
	SetCount    int      `json:"set_count"`
	RepMin      *int     `json:"rep_min,omitempty"`
	RepMax      *int     `json:"rep_max,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	DurationMax *int     `json:"duration_max,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`
}

// Params are the resolved numeric knobs for one (session, exercise) pair.
type Params struct {
	WeightIncrement              float64
	SetsToAdd                    int
	EveryNCycles                 int
	RPEIncrement                 float64
	StepCycleLength              int
	DoubleProgressionCycleLength int

	// IncludeBaseCycle shifts the phase-based methods so cycle 1 is the
	// unmodified baseline, and counts the base cycle as one extra interval
	// for volume. Linear and RPE ignore it.
	IncludeBaseCycle bool
}

// Offset returns how far into its phases cycle sits for double progression
// and step loading.
func (p Params) Offset(cycle int) int {
	cycle = atLeastOne(cycle)
	if p.IncludeBaseCycle {
		return cycle - 1
	}
	return cycle
}

// volumeIntervals returns how many cycles count towards a volume step.
func (p Params) volumeIntervals(cycle int) int {
	cycle = atLeastOne(cycle)
	if p.IncludeBaseCycle {
		return cycle + 1
	}
	return cycle
}

// Projection is the planned target for one exercise in one future cycle.
type Projection struct {
	SetCount    int      `json:"set_count"`
	RepMin      *int     `json:"rep_min,omitempty"`
	RepMax      *int     `json:"rep_max,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	DurationMax *int     `json:"duration_max,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Project computes the targets of cycle (1-based) for an exercise whose
// baseline is b. The result depends only on its arguments; no earlier
// projection is ever consulted, so drift cannot compound across cycles.
func Project(m Method, b Baseline, cycle int, p Params) Projection {
	out := Projection{
		SetCount:    b.SetCount,
		RepMin:      cloneInt(b.RepMin),
		RepMax:      cloneInt(b.RepMax),
		DurationMin: cloneInt(b.DurationMin),
		DurationMax: cloneInt(b.DurationMax),
		Weight:      cloneFloat(b.Weight),
		RPE:         cloneFloat(b.RPE),
	}
	cycle = atLeastOne(cycle)

	switch m {
	case Linear:
		out.addWeight(b, p.WeightIncrement*float64(cycle))
	case DoubleProgression:
		projectDoubleProgression(&out, b, p.Offset(cycle), p)
	case Volume:
		projectVolume(&out, b, p.volumeIntervals(cycle), p)
	case RPE:
		projectRPE(&out, b, cycle, p)
	case StepLoading:
		step := p.Offset(cycle) / atLeastOne(p.StepCycleLength)
		if step > 0 {
			out.addWeight(b, p.WeightIncrement*float64(step))
		} else {
			out.Note = "hold"
		}
	}
	return out
}

func projectDoubleProgression(out *Projection, b Baseline, offset int, p Params) {
	length := atLeastOne(p.DoubleProgressionCycleLength)
	phase := offset / length
	pos := offset % length

	if b.RepMin != nil && b.RepMax != nil && length > 1 {
		lo, hi := *b.RepMin, *b.RepMax
		next := int(math.Round(float64(lo) + float64(pos)*float64(hi-lo)/float64(length-1)))
		if next > hi {
			next = hi
		}
		out.RepMin = &next
	}

	if phase > 0 {
		// Reps are back at the bottom of the range; without a weight to
		// carry the phase forward the exercise holds.
		out.addWeight(b, p.WeightIncrement*float64(phase))
		return
	}
	if out.RepMin != nil && b.RepMin != nil && *out.RepMin != *b.RepMin {
		out.Note = fmt.Sprintf("%+d reps", *out.RepMin-*b.RepMin)
	}
}

func projectVolume(out *Projection, b Baseline, intervals int, p Params) {
	steps := intervals / atLeastOne(p.EveryNCycles)
	added := mulSaturating(p.SetsToAdd, steps)
	out.SetCount = addSaturating(b.SetCount, added)
	if out.SetCount < 1 {
		out.SetCount = 1
	}
	if added > 0 {
		out.Note = fmt.Sprintf("+%d sets", added)
	} else {
		out.Note = "hold"
	}
}

func projectRPE(out *Projection, b Baseline, cycle int, p Params) {
	if b.RPE == nil {
		out.Note = "hold"
		return
	}
	v := round2(*b.RPE + p.RPEIncrement*float64(cycle))
	v = math.Max(0, math.Min(MaxRPE, v))
	out.RPE = &v
	if delta := round2(v - *b.RPE); delta != 0 {
		out.Note = "RPE " + signed(delta)
	} else {
		out.Note = "hold"
	}
}

// addWeight shifts the baseline weight by delta. Exercises planned without a
// weight have nothing to load and hold.
func (out *Projection) addWeight(b Baseline, delta float64) {
	delta = round2(delta)
	if b.Weight == nil || delta == 0 {
		out.Note = "hold"
		return
	}
	w := round2(*b.Weight + delta)
	out.Weight = &w
	out.Note = signed(delta) + "kg"
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// mulSaturating multiplies a by n >= 0, pinning the result to the int range
// instead of wrapping.
func mulSaturating(a, n int) int {
	if a == 0 || n == 0 {
		return 0
	}
	if v := a * n; v/n == a {
		return v
	}
	if a > 0 {
		return math.MaxInt
	}
	return math.MinInt
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// round2 rounds to hundredths so repeated float additions don't leak
// artefacts like 60.300000000000004 into stored targets.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func signed(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
