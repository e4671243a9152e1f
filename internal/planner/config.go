package planner

import (
	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
)

// Defaults seeds the configuration of a freshly loaded plan.
type Defaults struct {
	Method                       overload.Method
	WeightIncrement              Field
	SetsToAdd                    Field
	EveryNCycles                 Field
	RPEIncrement                 Field
	StepCycleLength              Field
	DoubleProgressionCycleLength Field
	IncludeBaseCycle             bool
}

// StandardDefaults returns the stock knob values.
func StandardDefaults() Defaults {
	return Defaults{
		Method:                       overload.Linear,
		WeightIncrement:              "2.5",
		SetsToAdd:                    "1",
		EveryNCycles:                 "1",
		RPEIncrement:                 "0.5",
		StepCycleLength:              "2",
		DoubleProgressionCycleLength: "3",
	}
}

// ExerciseConfig holds the per-exercise knobs of one session.
type ExerciseConfig struct {
	ExerciseID      int64 `json:"exercise_id" yaml:"exercise_id"`
	WeightIncrement Field `json:"weight_increment" yaml:"weight_increment"`
	SetsToAdd       Field `json:"sets_to_add" yaml:"sets_to_add"`
	EveryNCycles    Field `json:"every_n_cycles" yaml:"every_n_cycles"`
}

// SessionConfig holds the method and cadence knobs of one base session.
type SessionConfig struct {
	SessionID                    int64            `json:"session_id" yaml:"session_id"`
	Method                       overload.Method  `json:"method" yaml:"method"`
	RPEIncrement                 Field            `json:"rpe_increment" yaml:"rpe_increment"`
	StepCycleLength              Field            `json:"step_cycle_length" yaml:"step_cycle_length"`
	DoubleProgressionCycleLength Field            `json:"double_progression_cycle_length" yaml:"double_progression_cycle_length"`
	IncludeBaseCycle             bool             `json:"include_base_cycle" yaml:"include_base_cycle"`
	Exercises                    []ExerciseConfig `json:"exercises" yaml:"exercises"`
}

// Config is the full, user-editable progression setup for a plan.
type Config struct {
	Sessions []SessionConfig `json:"sessions" yaml:"sessions"`
}

// Params resolves the session's and exercise's text knobs into numbers.
// Every-N-cycles is clamped to at least one.
func (s SessionConfig) Params(e ExerciseConfig) overload.Params {
	every := e.EveryNCycles.Int()
	if every < 1 {
		every = 1
	}
	return overload.Params{
		WeightIncrement:              e.WeightIncrement.Float(),
		SetsToAdd:                    e.SetsToAdd.Int(),
		EveryNCycles:                 every,
		RPEIncrement:                 s.RPEIncrement.Float(),
		StepCycleLength:              s.StepCycleLength.Int(),
		DoubleProgressionCycleLength: s.DoubleProgressionCycleLength.Int(),
		IncludeBaseCycle:             s.IncludeBaseCycle,
	}
}

// Exercise returns the configuration for exerciseID, if any.
func (s SessionConfig) Exercise(exerciseID int64) (ExerciseConfig, bool) {
	for _, e := range s.Exercises {
		if e.ExerciseID == exerciseID {
			return e, true
		}
	}
	return ExerciseConfig{}, false
}

// Session returns the configuration for sessionID, if any.
func (c Config) Session(sessionID int64) (SessionConfig, bool) {
	for _, s := range c.Sessions {
		if s.SessionID == sessionID {
			return s, true
		}
	}
	return SessionConfig{}, false
}

// SetMethod selects the method of one session. It reports false when the
// session has no configuration.
func (c *Config) SetMethod(sessionID int64, m overload.Method) bool {
	for i := range c.Sessions {
		if c.Sessions[i].SessionID == sessionID {
			c.Sessions[i].Method = m
			return true
		}
	}
	return false
}

// SetMethodAll selects m for every session.
func (c *Config) SetMethodAll(m overload.Method) {
	for i := range c.Sessions {
		c.Sessions[i].Method = m
	}
}

// Clone returns a deep copy so later edits cannot reach the original.
func (c Config) Clone() Config {
	out := Config{Sessions: make([]SessionConfig, len(c.Sessions))}
	for i, s := range c.Sessions {
		s.Exercises = append([]ExerciseConfig(nil), s.Exercises...)
		out.Sessions[i] = s
	}
	return out
}

// DefaultConfig builds one session configuration per base session and one
// exercise configuration per exercise that has a baseline.
func (p *Plan) DefaultConfig(d Defaults) Config {
	cfg := Config{Sessions: make([]SessionConfig, 0, len(p.Sessions))}
	for _, s := range p.Sessions {
		sc := SessionConfig{
			SessionID:                    s.ID,
			Method:                       d.Method,
			RPEIncrement:                 d.RPEIncrement,
			StepCycleLength:              d.StepCycleLength,
			DoubleProgressionCycleLength: d.DoubleProgressionCycleLength,
			IncludeBaseCycle:             d.IncludeBaseCycle,
		}
		seen := map[int64]bool{}
		for _, ex := range s.Exercises {
			if !ex.HasBaseline || seen[ex.ExerciseID] {
				continue
			}
			seen[ex.ExerciseID] = true
			sc.Exercises = append(sc.Exercises, ExerciseConfig{
				ExerciseID:      ex.ExerciseID,
				WeightIncrement: d.WeightIncrement,
				SetsToAdd:       d.SetsToAdd,
				EveryNCycles:    d.EveryNCycles,
			})
		}
		cfg.Sessions = append(cfg.Sessions, sc)
	}
	return cfg
}
