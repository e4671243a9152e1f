package models

import (
	"time"

	"github.com/google/uuid"
)

// Program is a named training block that owns the sessions used as its template.
type Program struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Exercise is a catalogue entry referenced by session exercises.
type Exercise struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session is one scheduled training day of a program.
type Session struct {
	ID        int64      `json:"id"`
	ProgramID int64      `json:"program_id"`
	Date      time.Time  `json:"date"`
	Completed bool       `json:"completed"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// GenerationID is set on sessions written by a progression commit and
	// shared by every session of that commit.
	GenerationID *uuid.UUID `json:"generation_id,omitempty"`

	Exercises []SessionExercise `json:"exercises"`
}

// SessionExercise places an exercise at a position within a session.
type SessionExercise struct {
	ID         int64 `json:"id"`
	ExerciseID int64 `json:"exercise_id"`
	Position   int   `json:"position"`
	Sets       []Set `json:"sets"`
}

// Set holds the planned targets of one set. Rep and duration bounds may be
// absent independently; Weight and RPE are nil when not planned.
type Set struct {
	ID          int64    `json:"id"`
	SetNumber   int      `json:"set_number"`
	IsWarmup    bool     `json:"is_warmup"`
	RepMin      *int     `json:"rep_min,omitempty"`
	RepMax      *int     `json:"rep_max,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	DurationMax *int     `json:"duration_max,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`
}

// SetCount returns the number of sets in every exercise of the session.
func (s Session) SetCount() int {
	n := 0
	for _, ex := range s.Exercises {
		n += len(ex.Sets)
	}
	return n
}
