package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"github.com/jackc/pgx/v5"
)

// ProgramSessions returns every session of a program with its exercises and
// sets, ordered by date.
func (db *DB) ProgramSessions(ctx context.Context, programID int64) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx, sessionSelect+` WHERE s.program_id = $1`+sessionOrder, programID)
	if err != nil {
		return nil, fmt.Errorf("querying program sessions: %w", err)
	}
	defer rows.Close()

	var a sessionAssembler
	for rows.Next() {
		var r sessionRow
		if err := rows.Scan(&r.SessionID, &r.ProgramID, &r.Date, &r.Completed, &r.StartTime, &r.EndTime, &r.GenerationID,
			&r.SessionExerciseID, &r.ExerciseID, &r.Position,
			&r.SetID, &r.SetNumber, &r.IsWarmup, &r.RepMin, &r.RepMax, &r.DurationMin, &r.DurationMax, &r.Weight, &r.RPE); err != nil {
			return nil, fmt.Errorf("scanning program session: %w", err)
		}
		a.add(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading program sessions: %w", err)
	}
	return a.sessions, nil
}

// ExerciseNames maps every exercise ID to its name.
func (db *DB) ExerciseNames(ctx context.Context) (map[int64]string, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM exercises`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// InsertGeneratedSessions writes sessions with their exercises and sets in
// one transaction. The program row is locked for the duration so concurrent
// commits against the same program run one after another.
func (db *DB) InsertGeneratedSessions(ctx context.Context, programID int64, sessions []models.Session) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM programs WHERE id = $1 FOR UPDATE`, programID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("locking program %d: %w", programID, ErrProgramNotFound)
		}
		if err != nil {
			return fmt.Errorf("locking program %d: %w", programID, err)
		}

		for _, s := range sessions {
			var sessionID int64
			err := tx.QueryRow(ctx,
				`INSERT INTO sessions (program_id, date, completed, start_time, end_time, generation_id)
				 VALUES ($1,$2,$3,$4,$5,$6)
				 RETURNING id`,
				programID, s.Date, s.Completed, s.StartTime, s.EndTime, s.GenerationID,
			).Scan(&sessionID)
			if err != nil {
				return fmt.Errorf("inserting session: %w", err)
			}

			for _, ex := range s.Exercises {
				var seID int64
				err := tx.QueryRow(ctx,
					`INSERT INTO session_exercises (session_id, exercise_id, position)
					 VALUES ($1,$2,$3)
					 RETURNING id`,
					sessionID, ex.ExerciseID, ex.Position,
				).Scan(&seID)
				if err != nil {
					return fmt.Errorf("inserting session exercise: %w", err)
				}
				if err := insertSets(ctx, tx, seID, ex.Sets); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func insertSets(ctx context.Context, tx pgx.Tx, sessionExerciseID int64, sets []models.Set) error {
	if len(sets) == 0 {
		return nil
	}

	query := `INSERT INTO sets (session_exercise_id, set_number, is_warmup, rep_min, rep_max, duration_min, duration_max, weight, rpe) VALUES `
	args := make([]any, 0, len(sets)*9)
	valueStrings := make([]string, 0, len(sets))

	for i, s := range sets {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, sessionExerciseID, s.SetNumber, s.IsWarmup,
			s.RepMin, s.RepMax, s.DurationMin, s.DurationMax, s.Weight, s.RPE)
	}

	if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
		return fmt.Errorf("inserting sets: %w", err)
	}
	return nil
}
