package planner

import (
	"fmt"
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
)

// PreviewCycle is one projected repetition of the base cycle.
type PreviewCycle struct {
	Index    int              `json:"index"`
	Label    string           `json:"label"`
	Sessions []PreviewSession `json:"sessions"`
}

// PreviewSession is the projection of one base session within a cycle.
type PreviewSession struct {
	BaseSessionID int64             `json:"base_session_id"`
	Date          time.Time         `json:"date"`
	Method        overload.Method   `json:"method"`
	Exercises     []PreviewExercise `json:"exercises"`
}

// PreviewExercise is the projected target of one exercise, with the
// display strings derived from it.
type PreviewExercise struct {
	ExerciseID int64               `json:"exercise_id"`
	Name       string              `json:"name"`
	Position   int                 `json:"position"`
	Projection overload.Projection `json:"projection"`
	SetsReps   string              `json:"sets_reps"`
	Weight     string              `json:"weight,omitempty"`
	RPE        string              `json:"rpe,omitempty"`
	Note       string              `json:"note,omitempty"`
}

// Simulate projects cycles repetitions of the plan under cfg. It performs no
// I/O and keeps no state: the same plan, configuration and cycle count always
// produce the same result. Sessions without a configuration, and exercises
// without a baseline or configuration, are left out rather than failing.
func (p *Plan) Simulate(cfg Config, cycles int) []PreviewCycle {
	if p.Empty() || cycles <= 0 {
		return nil
	}

	dates := make([]time.Time, len(p.Sessions))
	for i, s := range p.Sessions {
		dates[i] = s.Date
	}
	period := cyclePeriod(dates)

	out := make([]PreviewCycle, 0, cycles)
	for c := 1; c <= cycles; c++ {
		pc := PreviewCycle{
			Index:    c,
			Label:    fmt.Sprintf("Cycle %d", c),
			Sessions: make([]PreviewSession, 0, len(p.Sessions)),
		}
		for _, s := range p.Sessions {
			sc, ok := cfg.Session(s.ID)
			ps := PreviewSession{
				BaseSessionID: s.ID,
				Date:          cycleDate(s.Date, c, period),
				Method:        sc.Method,
				Exercises:     []PreviewExercise{},
			}
			if ok {
				ps.Exercises = projectSession(s, sc, c)
			}
			pc.Sessions = append(pc.Sessions, ps)
		}
		out = append(out, pc)
	}
	return out
}

func projectSession(s BaseSession, sc SessionConfig, cycle int) []PreviewExercise {
	out := []PreviewExercise{}
	for _, ex := range s.Exercises {
		if !ex.HasBaseline {
			continue
		}
		ec, ok := sc.Exercise(ex.ExerciseID)
		if !ok {
			continue
		}
		proj := overload.Project(sc.Method, ex.Baseline, cycle, sc.Params(ec))
		out = append(out, PreviewExercise{
			ExerciseID: ex.ExerciseID,
			Name:       ex.Name,
			Position:   ex.Position,
			Projection: proj,
			SetsReps:   proj.SetsReps(),
			Weight:     overload.FormatWeight(proj.Weight),
			RPE:        overload.FormatRPE(proj.RPE),
			Note:       proj.Note,
		})
	}
	return out
}
