package planner

import (
	"context"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
)

// Store is the persistence the planner needs. Both *storage.DB (PostgreSQL)
// and *storage.SQLite satisfy it.
type Store interface {
	// ProgramSessions returns every session of a program with its exercises
	// and sets (warmups included), ordered by date.
	ProgramSessions(ctx context.Context, programID int64) ([]models.Session, error)

	// ExerciseNames maps exercise IDs to display names.
	ExerciseNames(ctx context.Context) (map[int64]string, error)

	// InsertGeneratedSessions writes sessions with their exercises and sets
	// in a single transaction: all rows are written or none are.
	InsertGeneratedSessions(ctx context.Context, programID int64, sessions []models.Session) error
}

// BusySignal is told when a storage operation starts and finishes so an
// initiating surface can show progress.
type BusySignal interface {
	SetBusy(op string, busy bool)
}

type noBusySignal struct{}

func (noBusySignal) SetBusy(string, bool) {}
