package mcp

import (
	"context"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
)

// DataSource abstracts the planning layer for MCP tools. Both *api.Service
// (local database) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	Plan(ctx context.Context, programID int64) (*api.PlanResponse, error)
	Preview(ctx context.Context, programID int64, req api.ProgressionRequest) (*api.PreviewResponse, error)
	Generate(ctx context.Context, programID int64, req api.ProgressionRequest) (*planner.CommitResult, error)
}

// Compile-time check: *api.Service satisfies DataSource.
var _ DataSource = (*api.Service)(nil)
