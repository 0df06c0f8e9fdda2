// Package testserver starts an in-process HTTP server over an in-memory
// database for functional tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/savedchart"
	"github.com/ganot/roadmap/internal/mcp"
	"github.com/ganot/roadmap/internal/sqlite"
	"github.com/ganot/roadmap/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Catalog  *catalog.Service
	Token    string
	TenantID string

	apiKeys *sqlite.APIKeyRepository
}

// New serves JSON-RPC at /rpc and streamable MCP at /mcp, both requiring
// token as bearer credentials for tenantID.
func New(t *testing.T, token, tenantID string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	catalogRepo := sqlite.NewCatalogRepository(db)
	chartRepo := sqlite.NewChartRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	catalogSvc := catalog.NewService(catalogRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)
	chartSvc := savedchart.NewService(chartRepo, catalogSvc, activityRepo, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Catalog:  catalogSvc,
			Charts:   chartSvc,
			Activity: activitySvc,
		},
		Resolver:      apiKeys,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHTTP := sdkmcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	handler := mcp.NewHandler(catalogSvc, chartSvc, activitySvc)
	server := httptest.NewServer(transport.NewServer(handler, transport.AuthMiddleware(apiKeys), mcpHTTP))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Catalog:  catalogSvc,
		Token:    token,
		TenantID: tenantID,
		apiKeys:  apiKeys,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddAPIKey registers another bearer token.
func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	return ts.apiKeys.Create(context.Background(), tenantID, token, "test")
}

// Seed imports a catalog.
func (ts *TestServer) Seed(t *testing.T, seed catalog.Seed) {
	t.Helper()
	require.NoError(t, ts.Catalog.Import(context.Background(), seed))
}
