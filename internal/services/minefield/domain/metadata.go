package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/minefield/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InvocationIDKey names the correlation entry in tool result metadata.
const InvocationIDKey = "invocation_id"

// ResourceUpdateNotifier notifies MCP clients about resource updates.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResult builds a tool result carrying the invocation ID and a text
// summary.
func CallToolResult(invocationID, summary string) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			InvocationIDKey: invocationID,
		},
	}
	if summary != "" {
		result.Content = []mcp.Content{&mcp.TextContent{Text: summary}}
	}
	return result
}

// NotifyResourceUpdates sends resource update notifications for each URI provided.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, uri := range uris {
		if strings.TrimSpace(uri) == "" {
			continue
		}
		notify(ctx, uri)
	}
}
