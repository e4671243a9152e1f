package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"github.com/google/uuid"
)

// ErrCommitFailed wraps every storage failure of a commit. When it is
// returned no generated rows were written.
var ErrCommitFailed = errors.New("progression commit failed")

const (
	StatusGenerated         = "generated"
	StatusNothingToGenerate = "nothing_to_generate"
)

// CommitResult describes a finished commit.
type CommitResult struct {
	Status           string    `json:"status"`
	GenerationID     uuid.UUID `json:"generation_id,omitzero"`
	ProgramID        int64     `json:"program_id"`
	Cycles           int       `json:"cycles"`
	SessionsCreated  int       `json:"sessions_created"`
	ExercisesCreated int       `json:"exercises_created"`
	SetsCreated      int       `json:"sets_created"`
	FirstDate        time.Time `json:"first_date,omitzero"`
	LastDate         time.Time `json:"last_date,omitzero"`
}

// NothingToGenerate reports whether the commit was a no-op.
func (r *CommitResult) NothingToGenerate() bool {
	return r.Status == StatusNothingToGenerate
}

// GeneratedSessions turns the simulation of cycles into session rows: one
// per (cycle, base session), not completed, without start or end time,
// every set a working set carrying the projected targets.
func (p *Plan) GeneratedSessions(cfg Config, cycles int, generationID uuid.UUID) []models.Session {
	preview := p.Simulate(cfg, cycles)
	out := make([]models.Session, 0, len(preview)*len(p.Sessions))
	for _, pc := range preview {
		for _, ps := range pc.Sessions {
			gid := generationID
			s := models.Session{
				ProgramID:    p.ProgramID,
				Date:         ps.Date,
				GenerationID: &gid,
				Exercises:    make([]models.SessionExercise, 0, len(ps.Exercises)),
			}
			for _, pe := range ps.Exercises {
				s.Exercises = append(s.Exercises, models.SessionExercise{
					ExerciseID: pe.ExerciseID,
					Position:   pe.Position,
					Sets:       projectedSets(pe),
				})
			}
			out = append(out, s)
		}
	}
	return out
}

func projectedSets(pe PreviewExercise) []models.Set {
	proj := pe.Projection
	sets := make([]models.Set, 0, proj.SetCount)
	for n := 1; n <= proj.SetCount; n++ {
		sets = append(sets, models.Set{
			SetNumber:   n,
			RepMin:      copyInt(proj.RepMin),
			RepMax:      copyInt(proj.RepMax),
			DurationMin: copyInt(proj.DurationMin),
			DurationMax: copyInt(proj.DurationMax),
			Weight:      copyFloat(proj.Weight),
			RPE:         copyFloat(proj.RPE),
		})
	}
	return sets
}

// Commit re-reads the program's base cycle, projects cycles repetitions
// under cfg and writes them in one transaction. An empty base cycle or a
// non-positive cycle count is a no-op reported as StatusNothingToGenerate.
func (p *Planner) Commit(ctx context.Context, programID int64, cycles int, cfg Config) (*CommitResult, error) {
	result := &CommitResult{Status: StatusNothingToGenerate, ProgramID: programID, Cycles: cycles}

	plan, err := p.Load(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	if plan.Empty() || cycles <= 0 {
		p.log.Info("nothing to generate", "program_id", programID, "cycles", cycles)
		return result, nil
	}

	generationID := uuid.New()
	sessions := plan.GeneratedSessions(cfg.Clone(), cycles, generationID)

	p.busy.SetBusy("commit", true)
	defer p.busy.SetBusy("commit", false)

	start := time.Now()
	if err := p.store.InsertGeneratedSessions(ctx, programID, sessions); err != nil {
		p.log.Error("progression commit failed", "program_id", programID, "cycles", cycles, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	result.Status = StatusGenerated
	result.GenerationID = generationID
	result.SessionsCreated = len(sessions)
	for _, s := range sessions {
		result.ExercisesCreated += len(s.Exercises)
		result.SetsCreated += s.SetCount()
		if result.FirstDate.IsZero() || s.Date.Before(result.FirstDate) {
			result.FirstDate = s.Date
		}
		if s.Date.After(result.LastDate) {
			result.LastDate = s.Date
		}
	}

	p.log.Info("progression committed",
		"program_id", programID,
		"generation_id", generationID,
		"cycles", cycles,
		"sessions", result.SessionsCreated,
		"sets", result.SetsCreated,
		"duration", time.Since(start).String(),
	)
	return result, nil
}
