package mcp

import (
	"context"
	"errors"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
	"github.com/Aur71/Workout-Tracker-sub000/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// progressionArgs are the arguments of preview_progression and
// generate_progression.
type progressionArgs struct {
	ProgramID int64           `json:"program_id"`
	Cycles    int             `json:"cycles"`
	Method    string          `json:"method"`
	Config    *planner.Config `json:"config"`
}

func (a progressionArgs) request() api.ProgressionRequest {
	return api.ProgressionRequest{Cycles: a.Cycles, Method: a.Method, Config: a.Config}
}

func methodNames() []string {
	var names []string
	for _, m := range overload.Methods() {
		names = append(names, m.String())
	}
	return names
}

// --- Tool definitions ---

var toolListOverloadMethods = mcp.NewTool("list_overload_methods",
	mcp.WithDescription("List the progressive-overload methods (linear, double progression, volume, RPE, step loading) and the config knobs each one reads."),
)

var toolGetBaseCycle = mcp.NewTool("get_base_cycle",
	mcp.WithDescription("Load a program's base cycle: its sessions with each exercise's baseline (working sets, reps, weight, RPE), plus a default progression config that can be edited and passed to preview_progression."),
	mcp.WithNumber("program_id", mcp.Required(), mcp.Description("Program ID")),
)

var toolPreviewProgression = mcp.NewTool("preview_progression",
	mcp.WithDescription("Simulate future cycles of a program without writing anything. Returns per cycle, per session, per exercise targets (sets x reps, weight, RPE) and a short note on what changed."),
	mcp.WithNumber("program_id", mcp.Required(), mcp.Description("Program ID")),
	mcp.WithNumber("cycles", mcp.Required(), mcp.Min(1), mcp.Description("Number of cycles to project")),
	mcp.WithString("method", mcp.Description("Apply one method to every session. Overrides the methods in config."), mcp.Enum(methodNames()...)),
	mcp.WithObject("config", mcp.Description("Progression config as returned by get_base_cycle. Defaults to the program's default config.")),
)

var toolGenerateProgression = mcp.NewTool("generate_progression",
	mcp.WithDescription("Write future cycles of a program as planned sessions in one transaction. Takes the same arguments as preview_progression and produces exactly what it previews. Generated sessions are not removed automatically."),
	mcp.WithNumber("program_id", mcp.Required(), mcp.Description("Program ID")),
	mcp.WithNumber("cycles", mcp.Required(), mcp.Min(1), mcp.Description("Number of cycles to generate")),
	mcp.WithString("method", mcp.Description("Apply one method to every session. Overrides the methods in config."), mcp.Enum(methodNames()...)),
	mcp.WithObject("config", mcp.Description("Progression config as returned by get_base_cycle. Defaults to the program's default config.")),
)

// --- Tool handlers ---

func (h *handlers) listOverloadMethods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(api.Methods())
}

func (h *handlers) getBaseCycle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, err := req.RequireInt("program_id")
	if err != nil {
		return mcp.NewToolResultError("program_id parameter is required"), nil
	}

	resp, err := h.ds.Plan(ctx, int64(programID))
	if err != nil {
		return h.toolError("get_base_cycle", err), nil
	}
	return jsonResult(resp)
}

func (h *handlers) previewProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args progressionArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}

	resp, err := h.ds.Preview(ctx, args.ProgramID, args.request())
	if err != nil {
		return h.toolError("preview_progression", err), nil
	}
	return jsonResult(resp)
}

func (h *handlers) generateProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args progressionArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}

	result, err := h.ds.Generate(ctx, args.ProgramID, args.request())
	if err != nil {
		return h.toolError("generate_progression", err), nil
	}
	h.log.Info("mcp progression generated",
		"program_id", args.ProgramID,
		"status", result.Status,
		"sessions", result.SessionsCreated,
	)
	return jsonResult(result)
}

// toolError reports caller mistakes as they are and logs everything else.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, api.ErrInvalidRequest) || errors.Is(err, storage.ErrProgramNotFound) {
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("request failed: " + err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
