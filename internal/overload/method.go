package overload

import (
	"fmt"
	"strings"
)

// Method selects how a session's exercises progress from one cycle to the next.
type Method int

const (
	Linear Method = iota
	DoubleProgression
	Volume
	RPE
	StepLoading
)

var methodNames = [...]string{
	Linear:            "linear",
	DoubleProgression: "double_progression",
	Volume:            "volume",
	RPE:               "rpe",
	StepLoading:       "step_loading",
}

var methodLabels = [...]string{
	Linear:            "Linear",
	DoubleProgression: "Double Progression",
	Volume:            "Volume",
	RPE:               "RPE",
	StepLoading:       "Step Loading",
}

// Methods returns every method in display order.
func Methods() []Method {
	return []Method{Linear, DoubleProgression, Volume, RPE, StepLoading}
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	return m >= Linear && m <= StepLoading
}

// String returns the machine name used in JSON, YAML and query parameters.
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// Label returns the human-readable name.
func (m Method) Label() string {
	if !m.Valid() {
		return m.String()
	}
	return methodLabels[m]
}

// ParseMethod accepts either the machine name ("step_loading") or the label
// ("Step Loading"), case-insensitively.
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	for _, m := range Methods() {
		if strings.EqualFold(s, methodNames[m]) || strings.EqualFold(s, methodLabels[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown overload method %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid overload method %d", int(m))
	}
	return []byte(methodNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Knob names a configuration value that a method reads.
type Knob string

const (
	KnobWeightIncrement              Knob = "weight_increment"
	KnobSetsToAdd                    Knob = "sets_to_add"
	KnobEveryNCycles                 Knob = "every_n_cycles"
	KnobRPEIncrement                 Knob = "rpe_increment"
	KnobStepCycleLength              Knob = "step_cycle_length"
	KnobDoubleProgressionCycleLength Knob = "double_progression_cycle_length"
	KnobIncludeBaseCycle             Knob = "include_base_cycle"
)

// Knobs lists the configuration values m actually reads. Callers use it to
// decide which inputs are active for a session; it has no effect on Project.
func (m Method) Knobs() []Knob {
	switch m {
	case Linear:
		return []Knob{KnobWeightIncrement}
	case DoubleProgression:
		return []Knob{KnobWeightIncrement, KnobDoubleProgressionCycleLength, KnobIncludeBaseCycle}
	case Volume:
		return []Knob{KnobSetsToAdd, KnobEveryNCycles, KnobIncludeBaseCycle}
	case RPE:
		return []Knob{KnobRPEIncrement}
	case StepLoading:
		return []Knob{KnobWeightIncrement, KnobStepCycleLength, KnobIncludeBaseCycle}
	}
	return nil
}
