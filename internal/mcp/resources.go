package mcp

import (
	"context"
	"encoding/json"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) methodCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(api.Methods())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
