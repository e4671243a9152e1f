// Package api holds the request and response shapes shared by the REST
// server and the MCP tools, and the service both of them call.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
)

// ErrInvalidRequest marks errors caused by the caller's input.
var ErrInvalidRequest = errors.New("invalid request")

// ProgressionRequest is the input of preview and generate. Without a config
// the program's default configuration is used; Method, when set, is applied
// to every session.
type ProgressionRequest struct {
	Cycles int             `json:"cycles"`
	Method string          `json:"method,omitempty"`
	Config *planner.Config `json:"config,omitempty"`
}

// MethodInfo describes one overload method.
type MethodInfo struct {
	Name  string          `json:"name"`
	Label string          `json:"label"`
	Knobs []overload.Knob `json:"knobs"`
}

// PlanResponse is a program's base cycle and its default configuration.
type PlanResponse struct {
	Plan   *planner.Plan  `json:"plan"`
	Config planner.Config `json:"config"`
}

// PreviewResponse is a simulated progression and the config it used.
type PreviewResponse struct {
	ProgramID int64                  `json:"program_id"`
	Cycles    int                    `json:"cycles"`
	Config    planner.Config         `json:"config"`
	Preview   []planner.PreviewCycle `json:"preview"`
}

// Methods lists every overload method in display order.
func Methods() []MethodInfo {
	methods := overload.Methods()
	out := make([]MethodInfo, 0, len(methods))
	for _, m := range methods {
		out = append(out, MethodInfo{Name: m.String(), Label: m.Label(), Knobs: m.Knobs()})
	}
	return out
}

// Service answers plan, preview and generate requests.
type Service struct {
	planner   *planner.Planner
	maxCycles int
	maxSets   int
}

// NewService creates a Service that accepts at most maxCycles per request and
// refuses to generate any exercise with more than maxSets working sets.
func NewService(p *planner.Planner, maxCycles, maxSets int) *Service {
	return &Service{planner: p, maxCycles: maxCycles, maxSets: maxSets}
}

// Plan loads a program's base cycle.
func (s *Service) Plan(ctx context.Context, programID int64) (*PlanResponse, error) {
	plan, err := s.planner.Load(ctx, programID)
	if err != nil {
		return nil, err
	}
	return &PlanResponse{Plan: plan, Config: plan.DefaultConfig(s.planner.Defaults())}, nil
}

// Preview simulates req without writing anything.
func (s *Service) Preview(ctx context.Context, programID int64, req ProgressionRequest) (*PreviewResponse, error) {
	if err := s.validate(programID, req); err != nil {
		return nil, err
	}
	plan, err := s.planner.Load(ctx, programID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.resolve(plan, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkSets(plan, cfg, req.Cycles); err != nil {
		return nil, err
	}

	preview := plan.Simulate(cfg, req.Cycles)
	if preview == nil {
		preview = []planner.PreviewCycle{}
	}
	return &PreviewResponse{ProgramID: programID, Cycles: req.Cycles, Config: cfg, Preview: preview}, nil
}

// Generate commits req. An empty program is reported through the result
// status, not as an error.
func (s *Service) Generate(ctx context.Context, programID int64, req ProgressionRequest) (*planner.CommitResult, error) {
	if err := s.validate(programID, req); err != nil {
		return nil, err
	}
	plan, err := s.planner.Load(ctx, programID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.resolve(plan, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkSets(plan, cfg, req.Cycles); err != nil {
		return nil, err
	}
	return s.planner.Commit(ctx, programID, req.Cycles, cfg)
}

func (s *Service) validate(programID int64, req ProgressionRequest) error {
	if programID <= 0 {
		return fmt.Errorf("%w: program id must be positive", ErrInvalidRequest)
	}
	if req.Cycles < 1 || req.Cycles > s.maxCycles {
		return fmt.Errorf("%w: cycles must be between 1 and %d", ErrInvalidRequest, s.maxCycles)
	}
	return nil
}

// checkSets rejects a progression that would write an exercise with more
// working sets than the service allows.
func (s *Service) checkSets(plan *planner.Plan, cfg planner.Config, cycles int) error {
	for _, c := range plan.Simulate(cfg, cycles) {
		for _, ps := range c.Sessions {
			for _, pe := range ps.Exercises {
				if n := pe.Projection.SetCount; n > s.maxSets {
					return fmt.Errorf("%w: %s would reach %d sets in %s, the limit is %d",
						ErrInvalidRequest, pe.Name, n, c.Label, s.maxSets)
				}
			}
		}
	}
	return nil
}

func (s *Service) resolve(plan *planner.Plan, req ProgressionRequest) (planner.Config, error) {
	var cfg planner.Config
	if req.Config != nil {
		cfg = req.Config.Clone()
	} else {
		cfg = plan.DefaultConfig(s.planner.Defaults())
	}
	if req.Method != "" {
		m, err := overload.ParseMethod(req.Method)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		cfg.SetMethodAll(m)
	}
	return cfg, nil
}
