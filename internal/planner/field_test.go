package planner

import (
	"encoding/json"
	"testing"

	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
	"gopkg.in/yaml.v3"
)

// TestFieldParsing verifies lenient numeric parsing of user-entered text.
func TestFieldParsing(t *testing.T) {
	tests := []struct {
		in        Field
		wantFloat float64
		wantInt   int
	}{
		{"2.5", 2.5, 2},
		{"2,5", 2.5, 2},
		{" 3 ", 3, 3},
		{"", 0, 0},
		{"abc", 0, 0},
		{"NaN", 0, 0},
		{"Inf", 0, 0},
		{"-1", -1, -1},
		{"1e40", 1e40, 0},
	}

	for _, tt := range tests {
		if got := tt.in.Float(); got != tt.wantFloat {
			t.Errorf("Field(%q).Float() = %v, want %v", tt.in, got, tt.wantFloat)
		}
		if got := tt.in.Int(); got != tt.wantInt {
			t.Errorf("Field(%q).Int() = %v, want %v", tt.in, got, tt.wantInt)
		}
	}
}

// TestFieldJSON verifies both strings and bare numbers decode into a Field.
func TestFieldJSON(t *testing.T) {
	var ec ExerciseConfig
	raw := `{"exercise_id": 7, "weight_increment": 1.25, "sets_to_add": "2", "every_n_cycles": null}`
	if err := json.Unmarshal([]byte(raw), &ec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ec.ExerciseID != 7 || ec.WeightIncrement != "1.25" || ec.SetsToAdd != "2" || ec.EveryNCycles != "" {
		t.Errorf("decoded = %+v", ec)
	}
}

// TestSessionConfigYAML verifies a plan file entry decodes with its method name.
func TestSessionConfigYAML(t *testing.T) {
	raw := `
session_id: 3
method: step_loading
step_cycle_length: 3
include_base_cycle: true
exercises:
  - exercise_id: 10
    weight_increment: 2,5
    every_n_cycles: ~
`
	var sc SessionConfig
	if err := yaml.Unmarshal([]byte(raw), &sc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sc.Method != overload.StepLoading || sc.StepCycleLength != "3" || !sc.IncludeBaseCycle {
		t.Errorf("session = %+v", sc)
	}
	if len(sc.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(sc.Exercises))
	}

	p := sc.Params(sc.Exercises[0])
	if p.WeightIncrement != 2.5 {
		t.Errorf("weight increment = %v, want 2.5", p.WeightIncrement)
	}
	if p.EveryNCycles != 1 {
		t.Errorf("every n cycles = %d, want clamped to 1", p.EveryNCycles)
	}
	if p.StepCycleLength != 3 || !p.IncludeBaseCycle {
		t.Errorf("params = %+v", p)
	}
}

// TestConfigClone verifies a clone shares no exercise slices with its source.
func TestConfigClone(t *testing.T) {
	orig := Config{Sessions: []SessionConfig{{
		SessionID: 1,
		Method:    overload.Linear,
		Exercises: []ExerciseConfig{{ExerciseID: 10, WeightIncrement: "2.5"}},
	}}}
	clone := orig.Clone()
	clone.Sessions[0].Exercises[0].WeightIncrement = "5"
	clone.SetMethodAll(overload.RPE)

	if orig.Sessions[0].Exercises[0].WeightIncrement != "2.5" {
		t.Error("clone edit reached original exercise config")
	}
	if orig.Sessions[0].Method != overload.Linear {
		t.Error("clone edit reached original method")
	}
}
