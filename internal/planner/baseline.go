package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
)

// Plan is the immutable snapshot of a program's base cycle taken at load time.
// Every preview and commit projects from these baselines.
type Plan struct {
	ProgramID int64         `json:"program_id"`
	Sessions  []BaseSession `json:"sessions"`
}

// BaseSession is one session of the template mesocycle.
type BaseSession struct {
	ID        int64          `json:"id"`
	Date      time.Time      `json:"date"`
	Completed bool           `json:"completed"`
	Exercises []BaseExercise `json:"exercises"`
}

// BaseExercise is an exercise of a base session and its baseline. Exercises
// without working sets have HasBaseline false and never appear in a cycle.
type BaseExercise struct {
	ExerciseID  int64             `json:"exercise_id"`
	Name        string            `json:"name"`
	Position    int               `json:"position"`
	Baseline    overload.Baseline `json:"baseline"`
	HasBaseline bool              `json:"has_baseline"`
}

// Empty reports whether there is nothing to generate from.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Sessions) == 0
}

// Extract builds a plan from a program's sessions. Sessions are ordered by
// date, exercises by position and sets by set number; the input is not modified.
func Extract(programID int64, sessions []models.Session, names map[int64]string) *Plan {
	ordered := append([]models.Session(nil), sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	plan := &Plan{ProgramID: programID, Sessions: make([]BaseSession, 0, len(ordered))}
	for _, s := range ordered {
		bs := BaseSession{ID: s.ID, Date: s.Date, Completed: s.Completed}

		exercises := append([]models.SessionExercise(nil), s.Exercises...)
		sort.SliceStable(exercises, func(i, j int) bool {
			return exercises[i].Position < exercises[j].Position
		})
		for _, ex := range exercises {
			b, ok := BaselineOf(ex.Sets)
			bs.Exercises = append(bs.Exercises, BaseExercise{
				ExerciseID:  ex.ExerciseID,
				Name:        exerciseName(names, ex.ExerciseID),
				Position:    ex.Position,
				Baseline:    b,
				HasBaseline: ok,
			})
		}
		plan.Sessions = append(plan.Sessions, bs)
	}
	return plan
}

// BaselineOf returns the baseline of an exercise's sets: the first working
// set in set-number order plus the working-set count. It reports false when
// there are no working sets.
func BaselineOf(sets []models.Set) (overload.Baseline, bool) {
	ordered := append([]models.Set(nil), sets...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SetNumber < ordered[j].SetNumber
	})

	var b overload.Baseline
	found := false
	for _, s := range ordered {
		if s.IsWarmup {
			continue
		}
		b.SetCount++
		if found {
			continue
		}
		found = true
		b.RepMin = copyInt(s.RepMin)
		b.RepMax = copyInt(s.RepMax)
		b.DurationMin = copyInt(s.DurationMin)
		b.DurationMax = copyInt(s.DurationMax)
		b.Weight = copyFloat(s.Weight)
		b.RPE = copyFloat(s.RPE)
	}
	return b, found
}

func exerciseName(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return fmt.Sprintf("Exercise #%d", id)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
