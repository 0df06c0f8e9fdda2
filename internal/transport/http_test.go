package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	method string
	err    error
}

func (h *testHandler) Handle(_ context.Context, tenantID, method string, _ json.RawMessage) (any, error) {
	h.method = method
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"tenant": tenantID}, nil
}

type staticResolver struct {
	tenant string
}

func (r *staticResolver) ResolveTenant(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	return r.tenant, nil
}

type codedTestError struct {
	code string
}

func (e *codedTestError) Error() string             { return e.code }
func (e *codedTestError) CodeValue() string         { return e.code }
func (e *codedTestError) MessageValue() string      { return "message for " + e.code }
func (e *codedTestError) DetailsValue() any         { return nil }
func (e *codedTestError) RecoveryHintValue() string { return "try again" }

func postRPC(t *testing.T, url, token, body string) Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/rpc", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	resolver := &staticResolver{tenant: "tenant1"}
	server := httptest.NewServer(NewServer(handler, AuthMiddleware(resolver), nil))
	t.Cleanup(server.Close)

	resp := postRPC(t, server.URL, "token", `{"jsonrpc":"2.0","method":"list_mineral_types","id":1}`)
	require.Nil(t, resp.Error)
	require.Equal(t, "list_mineral_types", handler.method)
	assert.Equal(t, map[string]any{"tenant": "tenant1"}, resp.Result)
}

func TestHTTPServer_RPCRequiresToken(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, AuthMiddleware(&staticResolver{tenant: "tenant1"}), nil))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/rpc", "application/json",
		bytes.NewBufferString(`{"jsonrpc":"2.0","method":"list_mineral_types","id":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, handler.method)
}

func TestHTTPServer_RPCDefaultTenant(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, nil, nil))
	t.Cleanup(server.Close)

	resp := postRPC(t, server.URL, "", `{"jsonrpc":"2.0","method":"list_charts","id":"a"}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"tenant": DefaultTenant}, resp.Result)
	assert.Equal(t, "a", resp.ID)
}

func TestHTTPServer_RPCErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantData string
	}{
		{name: "parse error", body: `{not json`, wantCode: ErrParseCode},
		{name: "missing method", body: `{"jsonrpc":"2.0","id":1}`, wantCode: ErrInvalidReq},
		{name: "unknown method", body: `{"jsonrpc":"2.0","method":"nope","id":1}`, err: &codedTestError{code: "METHOD_NOT_FOUND"}, wantCode: ErrMethodNotFound, wantData: "METHOD_NOT_FOUND"},
		{name: "invalid params", body: `{"jsonrpc":"2.0","method":"get_chart","id":1}`, err: &codedTestError{code: "INVALID_PARAMS"}, wantCode: ErrInvalidParams, wantData: "INVALID_PARAMS"},
		{name: "domain error", body: `{"jsonrpc":"2.0","method":"preview_chart","id":1}`, err: &codedTestError{code: "STAGE_NOT_FOUND"}, wantCode: ErrApplication, wantData: "STAGE_NOT_FOUND"},
		{name: "internal error", body: `{"jsonrpc":"2.0","method":"list_charts","id":1}`, err: errors.New("boom"), wantCode: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(NewServer(&testHandler{err: tt.err}, nil, nil))
			t.Cleanup(server.Close)

			resp := postRPC(t, server.URL, "", tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantData != "" {
				data, ok := resp.Error.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantData, data["code"])
				assert.Equal(t, "try again", data["recovery_hint"])
			}
		})
	}
}

func TestHTTPServer_Health(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, AuthMiddleware(&staticResolver{}), nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_MountsMCPHandler(t *testing.T) {
	mcpHTTP := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	server := httptest.NewServer(NewServer(&testHandler{}, nil, mcpHTTP))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/mcp", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}
