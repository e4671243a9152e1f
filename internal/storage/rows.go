package storage

import (
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"github.com/google/uuid"
)

// sessionRow is one row of the sessions/session_exercises/sets left join.
// Exercise and set columns are nil for sessions without exercises and for
// exercises without sets.
type sessionRow struct {
	SessionID    int64
	ProgramID    int64
	Date         time.Time
	Completed    bool
	StartTime    *time.Time
	EndTime      *time.Time
	GenerationID *uuid.UUID

	SessionExerciseID *int64
	ExerciseID        *int64
	Position          *int

	SetID       *int64
	SetNumber   *int
	IsWarmup    *bool
	RepMin      *int
	RepMax      *int
	DurationMin *int
	DurationMax *int
	Weight      *float64
	RPE         *float64
}

// sessionAssembler folds ordered join rows back into nested sessions.
// Rows must arrive grouped by session, then by session exercise.
type sessionAssembler struct {
	sessions []models.Session
}

func (a *sessionAssembler) add(r sessionRow) {
	n := len(a.sessions)
	if n == 0 || a.sessions[n-1].ID != r.SessionID {
		a.sessions = append(a.sessions, models.Session{
			ID:           r.SessionID,
			ProgramID:    r.ProgramID,
			Date:         r.Date,
			Completed:    r.Completed,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			GenerationID: r.GenerationID,
		})
		n++
	}
	s := &a.sessions[n-1]

	if r.SessionExerciseID == nil {
		return
	}
	m := len(s.Exercises)
	if m == 0 || s.Exercises[m-1].ID != *r.SessionExerciseID {
		se := models.SessionExercise{ID: *r.SessionExerciseID}
		if r.ExerciseID != nil {
			se.ExerciseID = *r.ExerciseID
		}
		if r.Position != nil {
			se.Position = *r.Position
		}
		s.Exercises = append(s.Exercises, se)
		m++
	}
	se := &s.Exercises[m-1]

	if r.SetID == nil {
		return
	}
	set := models.Set{
		ID:          *r.SetID,
		RepMin:      r.RepMin,
		RepMax:      r.RepMax,
		DurationMin: r.DurationMin,
		DurationMax: r.DurationMax,
		Weight:      r.Weight,
		RPE:         r.RPE,
	}
	if r.SetNumber != nil {
		set.SetNumber = *r.SetNumber
	}
	if r.IsWarmup != nil {
		set.IsWarmup = *r.IsWarmup
	}
	se.Sets = append(se.Sets, set)
}

// sessionSelect is shared by both backends; only the placeholder differs.
const sessionSelect = `SELECT s.id, s.program_id, s.date, s.completed, s.start_time, s.end_time, s.generation_id,
	 se.id, se.exercise_id, se.position,
	 st.id, st.set_number, st.is_warmup, st.rep_min, st.rep_max, st.duration_min, st.duration_max, st.weight, st.rpe
	 FROM sessions s
	 LEFT JOIN session_exercises se ON se.session_id = s.id
	 LEFT JOIN sets st ON st.session_exercise_id = se.id`

const sessionOrder = ` ORDER BY s.date, s.id, se.position, se.id, st.set_number, st.id`
