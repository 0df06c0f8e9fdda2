package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools exposes every Handler method as an MCP tool. Input schemas
// are inferred from the params structs in types.go.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Catalog
	addTool[ListMineralTypesParams](server, h, "list_mineral_types",
		"List the mineral resource types a roadmap can be built for")
	addTool[ListStagesParams](server, h, "list_stages",
		"List the project stages of a mineral type in pipeline order, with their dependencies")
	addTool[ListQuestionsParams](server, h, "list_questions",
		"List the target questions offered for a mineral type; each question selects the stages it needs")
	addTool[ListWorksParams](server, h, "list_works",
		"List the works inside a stage in order")

	// Charts
	addTool[PreviewChartParams](server, h, "preview_chart",
		"Build a roadmap for a mineral type from a start stage, optionally narrowed by a question, without saving it")
	addTool[CreateChartParams](server, h, "create_chart",
		"Build a roadmap and save it under a title")
	addTool[GetChartParams](server, h, "get_chart",
		"Get a saved chart with its document exactly as it was built")
	addTool[ListChartsParams](server, h, "list_charts",
		"List saved charts, newest first")
	addTool[DeleteChartParams](server, h, "delete_chart",
		"Delete a saved chart")
	addTool[RebuildChartParams](server, h, "rebuild_chart",
		"Build a new saved chart from an existing chart's parameters against the current catalog; the original is kept")

	// Activity
	addTool[GetRecentActivityParams](server, h, "get_recent_activity",
		"Get recent chart and catalog activity, optionally for one chart or one activity type")
}

func addTool[In any](server *sdkmcp.Server, h *Handler, name, description string) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		params, err := json.Marshal(in)
		if err != nil {
			return nil, nil, err
		}
		result, err := h.Handle(ctx, getTenantID(ctx), name, params)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(result)
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	payload := MapError(err)
	if payload == nil {
		payload = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(payload)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
