package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/roadmap/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultTenant owns charts when authentication is off.
const DefaultTenant = transport.DefaultTenant

// ErrUnauthorized is returned for tool calls without a valid bearer token.
var ErrUnauthorized = errors.New("unauthorized")

type contextKey int

const tenantIDKey contextKey = iota

func getTenantID(ctx context.Context) string {
	v, _ := ctx.Value(tenantIDKey).(string)
	return v
}

// TenantResolver resolves a tenant ID from a bearer token.
type TenantResolver interface {
	ResolveTenant(ctx context.Context, token string) (string, error)
}

// tenantFunc decides which tenant a request acts for.
type tenantFunc func(ctx context.Context, req sdkmcp.Request) (string, error)

// Handshake methods run before the client presents credentials.
var handshakeMethods = map[string]bool{
	"initialize":                true,
	"ping":                      true,
	"notifications/initialized": true,
}

func tenantMiddleware(resolve tenantFunc) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if handshakeMethods[method] {
				return next(ctx, method, req)
			}
			tenantID, err := resolve(ctx, req)
			if err != nil {
				return nil, err
			}
			return next(context.WithValue(ctx, tenantIDKey, tenantID), method, req)
		}
	}
}

func staticTenant(tenantID string) tenantFunc {
	return func(context.Context, sdkmcp.Request) (string, error) {
		return tenantID, nil
	}
}

// bearerTenant reads the Authorization header the streamable HTTP transport
// attaches to every request.
func bearerTenant(resolver TenantResolver) tenantFunc {
	return func(ctx context.Context, req sdkmcp.Request) (string, error) {
		extra := req.GetExtra()
		if extra == nil || extra.Header == nil {
			return "", fmt.Errorf("%w: no request headers", ErrUnauthorized)
		}
		token, ok := transport.BearerToken(extra.Header.Get("Authorization"))
		if !ok {
			return "", fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
		}
		tenantID, err := resolver.ResolveTenant(ctx, token)
		if err != nil || tenantID == "" {
			return "", fmt.Errorf("%w: invalid bearer token", ErrUnauthorized)
		}
		return tenantID, nil
	}
}
