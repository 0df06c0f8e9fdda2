package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error)
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
}

// NewServer creates an HTTP router: POST /rpc dispatches JSON-RPC calls to
// handler behind authMiddleware, GET /health is open, and mcpHTTP, when set,
// serves the streamable MCP transport under /mcp.
func NewServer(handler MCPHandler, authMiddleware func(http.Handler) http.Handler, mcpHTTP http.Handler) *chi.Mux {
	r := chi.NewRouter()
	srv := &Server{handler: handler}

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		} else {
			r.Use(DefaultTenantMiddleware)
		}
		r.Post("/rpc", srv.handleRPC)
	})

	if mcpHTTP != nil {
		r.Handle("/mcp", mcpHTTP)
		r.Handle("/mcp/*", mcpHTTP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, errorCode(err), err.Error(), nil)
		return
	}

	tenantID, ok := TenantFromContext(r.Context())
	if !ok || tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	result, err := s.handler.Handle(r.Context(), tenantID, req.Method, req.Params)
	if err != nil {
		WriteHandlerError(w, req.ID, err)
		return
	}

	WriteResult(w, req.ID, result)
}
