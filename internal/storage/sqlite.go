package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteDate = "2006-01-02"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS programs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS exercises (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS sessions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	program_id    INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
	date          TEXT NOT NULL,
	completed     INTEGER NOT NULL DEFAULT 0,
	start_time    TEXT,
	end_time      TEXT,
	generation_id TEXT,
	created_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sessions_program_date ON sessions (program_id, date);

CREATE TABLE IF NOT EXISTS session_exercises (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	exercise_id INTEGER NOT NULL REFERENCES exercises(id),
	position    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sets (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	session_exercise_id INTEGER NOT NULL REFERENCES session_exercises(id) ON DELETE CASCADE,
	set_number          INTEGER NOT NULL,
	is_warmup           INTEGER NOT NULL DEFAULT 0,
	rep_min             INTEGER,
	rep_max             INTEGER,
	duration_min        INTEGER,
	duration_max        INTEGER,
	weight              REAL,
	rpe                 REAL CHECK (rpe IS NULL OR (rpe >= 0 AND rpe <= 10))
);
`

// SQLite is a single-file store for running without PostgreSQL. It holds one
// connection, so writers are serialized by the driver.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateProgram inserts a program and returns its ID.
func (s *SQLite) CreateProgram(ctx context.Context, p models.Program) (int64, error) {
	var end *string
	if p.EndDate != nil {
		v := p.EndDate.Format(sqliteDate)
		end = &v
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO programs (name, start_date, end_date) VALUES (?, ?, ?)`,
		p.Name, p.StartDate.Format(sqliteDate), end)
	if err != nil {
		return 0, fmt.Errorf("inserting program: %w", err)
	}
	return res.LastInsertId()
}

// CreateExercise inserts an exercise and returns its ID.
func (s *SQLite) CreateExercise(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO exercises (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise %q: %w", name, err)
	}
	return res.LastInsertId()
}

// ProgramSessions returns every session of a program with its exercises and
// sets, ordered by date.
func (s *SQLite) ProgramSessions(ctx context.Context, programID int64) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx, sessionSelect+` WHERE s.program_id = ?`+sessionOrder, programID)
	if err != nil {
		return nil, fmt.Errorf("querying program sessions: %w", err)
	}
	defer rows.Close()

	var a sessionAssembler
	for rows.Next() {
		var r sessionRow
		var date string
		var start, end, genID *string
		if err := rows.Scan(&r.SessionID, &r.ProgramID, &date, &r.Completed, &start, &end, &genID,
			&r.SessionExerciseID, &r.ExerciseID, &r.Position,
			&r.SetID, &r.SetNumber, &r.IsWarmup, &r.RepMin, &r.RepMax, &r.DurationMin, &r.DurationMax, &r.Weight, &r.RPE); err != nil {
			return nil, fmt.Errorf("scanning program session: %w", err)
		}
		if r.Date, err = time.Parse(sqliteDate, date); err != nil {
			return nil, fmt.Errorf("parsing date of session %d: %w", r.SessionID, err)
		}
		if r.StartTime, err = parseTimestamp(start); err != nil {
			return nil, fmt.Errorf("parsing start time of session %d: %w", r.SessionID, err)
		}
		if r.EndTime, err = parseTimestamp(end); err != nil {
			return nil, fmt.Errorf("parsing end time of session %d: %w", r.SessionID, err)
		}
		if genID != nil {
			id, err := uuid.Parse(*genID)
			if err != nil {
				return nil, fmt.Errorf("parsing generation id of session %d: %w", r.SessionID, err)
			}
			r.GenerationID = &id
		}
		a.add(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading program sessions: %w", err)
	}
	return a.sessions, nil
}

// ExerciseNames maps every exercise ID to its name.
func (s *SQLite) ExerciseNames(ctx context.Context) (map[int64]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM exercises`)
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
// one transaction.
func (s *SQLite) InsertGeneratedSessions(ctx context.Context, programID int64, sessions []models.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM programs WHERE id = ?`, programID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking program %d: %w", programID, ErrProgramNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking program %d: %w", programID, err)
	}

	for _, sess := range sessions {
		var genID *string
		if sess.GenerationID != nil {
			v := sess.GenerationID.String()
			genID = &v
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (program_id, date, completed, start_time, end_time, generation_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			programID, sess.Date.Format(sqliteDate), sess.Completed,
			formatTimestamp(sess.StartTime), formatTimestamp(sess.EndTime), genID)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}
		sessionID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading session id: %w", err)
		}

		for _, ex := range sess.Exercises {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO session_exercises (session_id, exercise_id, position) VALUES (?, ?, ?)`,
				sessionID, ex.ExerciseID, ex.Position)
			if err != nil {
				return fmt.Errorf("inserting session exercise: %w", err)
			}
			seID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("reading session exercise id: %w", err)
			}
			if err := insertSQLiteSets(ctx, tx, seID, ex.Sets); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing generated sessions: %w", err)
	}
	return nil
}

func insertSQLiteSets(ctx context.Context, tx *sql.Tx, sessionExerciseID int64, sets []models.Set) error {
	if len(sets) == 0 {
		return nil
	}

	query := `INSERT INTO sets (session_exercise_id, set_number, is_warmup, rep_min, rep_max, duration_min, duration_max, weight, rpe) VALUES `
	args := make([]any, 0, len(sets)*9)
	valueStrings := make([]string, 0, len(sets))

	for _, s := range sets {
		valueStrings = append(valueStrings, "(?,?,?,?,?,?,?,?,?)")
		args = append(args, sessionExerciseID, s.SetNumber, s.IsWarmup,
			s.RepMin, s.RepMax, s.DurationMin, s.DurationMax, s.Weight, s.RPE)
	}

	if _, err := tx.ExecContext(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
		return fmt.Errorf("inserting sets: %w", err)
	}
	return nil
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func parseTimestamp(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
