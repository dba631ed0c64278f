package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolArgs is the uniform argument mapping callers pass to generated tools.
type ToolArgs map[string]any

// AddTools registers every compiled tool on the server. The registry
// decides transport; each handler just delegates to Invoke, surfacing
// validation and path-parameter failures as tool errors and normalized
// result mappings as structured output.
func AddTools(server *mcp.Server, tools []*Tool) {
	for _, tool := range tools {
		mcp.AddTool(server, &mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		}, handlerFor(tool))
	}
}

func handlerFor(tool *Tool) func(context.Context, *mcp.CallToolRequest, ToolArgs) (*mcp.CallToolResult, map[string]any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args ToolArgs) (*mcp.CallToolResult, map[string]any, error) {
		result, err := tool.Invoke(ctx, args)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	}
}
