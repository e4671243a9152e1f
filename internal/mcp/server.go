package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("mesoplan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("mesoplan progression planner. Inspect a training program's base cycle, preview progressive-overload cycles and generate them as planned sessions. Always preview before generating: generation writes sessions that are not undone."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListOverloadMethods, Handler: h.listOverloadMethods},
		server.ServerTool{Tool: toolGetBaseCycle, Handler: h.getBaseCycle},
		server.ServerTool{Tool: toolPreviewProgression, Handler: h.previewProgression},
		server.ServerTool{Tool: toolGenerateProgression, Handler: h.generateProgression},
	)

	s.AddResources(
		server.ServerResource{Resource: resMethodCatalog, Handler: h.methodCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resMethodCatalog = mcp.NewResource(
	"mesoplan://methods",
	"Overload Methods",
	mcp.WithResourceDescription("Every progressive-overload method with the knobs it reads"),
	mcp.WithMIMEType("application/json"),
)
