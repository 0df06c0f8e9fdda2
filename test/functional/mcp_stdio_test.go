package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stdioSession wraps an MCP client session for stdio transport testing
type stdioSession struct {
	session *sdkmcp.ClientSession
	cancel  context.CancelFunc
}

func newStdioSession(t *testing.T) *stdioSession {
	t.Helper()
	return newStdioSessionWithEnv(t, nil)
}

func newStdioSessionWithEnv(t *testing.T, extraEnv []string) *stdioSession {
	t.Helper()

	binaryPath := "./bin/roadmap"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/roadmap"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'make build' first.")
		}
	}

	seedPath, err := filepath.Abs(sampleCatalog)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"ROADMAP_TRANSPORT=stdio",
		"ROADMAP_DB_PATH=:memory:",
		"ROADMAP_AUTH_ENABLED=false",
		"ROADMAP_SEED_PATH="+seedPath,
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	transport := &sdkmcp.CommandTransport{Command: cmd}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return &stdioSession{session: session, cancel: cancel}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestStdioFunctional_BrowseCatalog(t *testing.T) {
	s := newStdioSession(t)

	var types []struct {
		ID   int64  `json:"id"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(s.callTool(t, "list_mineral_types", nil), &types))
	require.Len(t, types, 2)
	assert.Equal(t, "coal", types[0].Code)

	var stages []struct {
		ID        int64   `json:"id"`
		Order     int     `json:"order"`
		DependsOn []int64 `json:"depends_on"`
	}
	require.NoError(t, json.Unmarshal(s.callTool(t, "list_stages", map[string]any{"mineral_type_id": types[1].ID}), &stages))
	require.Len(t, stages, 4)
	assert.Equal(t, int64(201), stages[0].ID)
	assert.Empty(t, stages[0].DependsOn)
	assert.Equal(t, []int64{201}, stages[1].DependsOn)
}

func TestStdioFunctional_ChartWorkflow(t *testing.T) {
	s := newStdioSession(t)

	var preview struct {
		Chart struct {
			TotalDuration int `json:"total_duration"`
		} `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(s.callTool(t, "preview_chart", map[string]any{
		"mineral_type_id": 1,
		"start_stage_id":  103,
	}), &preview))
	assert.Equal(t, 62, preview.Chart.TotalDuration)

	var created chartResult
	require.NoError(t, json.Unmarshal(s.callTool(t, "create_chart", map[string]any{
		"title":           "From reserves",
		"mineral_type_id": 1,
		"start_stage_id":  103,
	}), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, int64(103), created.StartStageID)

	var fetched chartResult
	require.NoError(t, json.Unmarshal(s.callTool(t, "get_chart", map[string]any{"id": created.ID}), &fetched))
	assert.JSONEq(t, string(created.Chart), string(fetched.Chart))

	var rebuilt chartResult
	require.NoError(t, json.Unmarshal(s.callTool(t, "rebuild_chart", map[string]any{"id": created.ID}), &rebuilt))
	assert.NotEqual(t, created.ID, rebuilt.ID)
	assert.Equal(t, 62, rebuilt.TotalDuration)

	var list []chartResult
	require.NoError(t, json.Unmarshal(s.callTool(t, "list_charts", nil), &list))
	require.Len(t, list, 2)

	s.callTool(t, "delete_chart", map[string]any{"id": created.ID})

	var recent []struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(s.callTool(t, "get_recent_activity", nil), &recent))
	require.Len(t, recent, 4)
	assert.Equal(t, "chart_deleted", recent[0].Type)
	assert.Equal(t, "catalog_imported", recent[3].Type)
}

func TestStdioFunctional_ToolError(t *testing.T) {
	s := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "preview_chart",
		Arguments: map[string]any{"mineral_type_id": 1, "start_stage_id": 201},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "STAGE_NOT_FOUND")
}

func TestStdioFunctional_ToolDescriptions(t *testing.T) {
	s := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := s.session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 11)
	for _, tool := range tools.Tools {
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %s has no input schema", tool.Name)
	}
}

func TestStdioFunctional_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "roadmap.log")
	s := newStdioSessionWithEnv(t, []string{
		"ROADMAP_LOG_PATH=" + logPath,
		"ROADMAP_LOG_LEVEL=debug",
	})

	s.callTool(t, "list_mineral_types", nil)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		content := string(data)
		return strings.Contains(content, `msg="mcp traffic"`) &&
			strings.Contains(content, "stage=request") &&
			strings.Contains(content, "stage=response") &&
			strings.Contains(content, "method=tools/call")
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStdioFunctional_DocumentationResources(t *testing.T) {
	s := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resources, err := s.session.ListResources(ctx, nil)
	require.NoError(t, err)

	byURI := make(map[string]*sdkmcp.Resource)
	for _, resource := range resources.Resources {
		byURI[resource.URI] = resource
	}
	for _, uri := range []string{
		"roadmap://docs/index",
		"roadmap://docs/concepts",
		"roadmap://docs/chart-building",
		"roadmap://docs/workflows/saved-charts",
	} {
		resource, ok := byURI[uri]
		require.True(t, ok, "missing resource %s", uri)
		assert.Equal(t, "text/markdown", resource.MIMEType)
		assert.Greater(t, resource.Size, int64(0))
	}

	read, err := s.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "roadmap://docs/chart-building"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	assert.NotEmpty(t, read.Contents[0].Text)
}
