package planner

import (
	"context"
	"sync"

	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
)

// Workflow is one editing session over a program: the base cycle loaded
// once, a mutable configuration, and previews recomputed on demand.
type Workflow struct {
	planner *Planner
	plan    *Plan

	mu  sync.Mutex
	cfg Config
}

// Open loads programID and seeds a default configuration.
func (p *Planner) Open(ctx context.Context, programID int64) (*Workflow, error) {
	plan, err := p.Load(ctx, programID)
	if err != nil {
		return nil, err
	}
	return &Workflow{
		planner: p,
		plan:    plan,
		cfg:     plan.DefaultConfig(p.defaults),
	}, nil
}

// Plan returns the base-cycle snapshot taken when the workflow was opened.
func (w *Workflow) Plan() *Plan {
	return w.plan
}

// Config returns a copy of the current configuration.
func (w *Workflow) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg.Clone()
}

// SetConfig replaces the configuration with a copy of cfg.
func (w *Workflow) SetConfig(cfg Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg.Clone()
}

// SetMethod selects the method of one base session.
func (w *Workflow) SetMethod(sessionID int64, m overload.Method) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg.SetMethod(sessionID, m)
}

// Simulate previews cycles repetitions under the current configuration.
func (w *Workflow) Simulate(cycles int) []PreviewCycle {
	return w.plan.Simulate(w.Config(), cycles)
}

// Commit generates cycles repetitions under the current configuration.
func (w *Workflow) Commit(ctx context.Context, cycles int) (*CommitResult, error) {
	return w.planner.Commit(ctx, w.plan.ProgramID, cycles, w.Config())
}
