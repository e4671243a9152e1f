package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"golang.org/x/sync/errgroup"
)

// Planner loads base cycles and commits generated cycles against a Store.
type Planner struct {
	store    Store
	log      *slog.Logger
	defaults Defaults
	busy     BusySignal
}

// Option configures a Planner.
type Option func(*Planner)

// WithDefaults replaces the stock knob values used for fresh configurations.
func WithDefaults(d Defaults) Option {
	return func(p *Planner) { p.defaults = d }
}

// WithBusySignal reports load and commit activity to s.
func WithBusySignal(s BusySignal) Option {
	return func(p *Planner) { p.busy = s }
}

// New creates a Planner.
func New(store Store, log *slog.Logger, opts ...Option) *Planner {
	p := &Planner{
		store:    store,
		log:      log,
		defaults: StandardDefaults(),
		busy:     noBusySignal{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Defaults returns the knob values used for fresh configurations.
func (p *Planner) Defaults() Defaults {
	return p.defaults
}

// Load reads a program's sessions and exercise names and extracts the base
// cycle. A program without sessions yields an empty plan, not an error.
// Failing to read exercise names only degrades labels.
func (p *Planner) Load(ctx context.Context, programID int64) (*Plan, error) {
	p.busy.SetBusy("load", true)
	defer p.busy.SetBusy("load", false)

	var (
		sessions []models.Session
		names    map[int64]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = p.store.ProgramSessions(gctx, programID)
		if err != nil {
			return fmt.Errorf("loading sessions for program %d: %w", programID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		names, err = p.store.ExerciseNames(gctx)
		if err != nil {
			p.log.Warn("exercise names unavailable", "program_id", programID, "error", err)
			names = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := Extract(programID, sessions, names)
	p.log.Info("base cycle loaded", "program_id", programID, "sessions", len(plan.Sessions))
	return plan, nil
}
