// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Context keys and getter/setter pairs live here so that values set by
// middleware can be consumed by services without those services importing
// net/http or transport packages.
//
// Usage in services (read values):
//
//	user := requestcontext.User(ctx)
//	id := requestcontext.RequestID(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithUser(ctx, user)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
package requestcontext

import (
	"context"

	"domainstore/internal/identity"
)

// Context key types (unexported for encapsulation).
type (
	userKey      struct{}
	requestIDKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyUser      = userKey{}
	ContextKeyRequestID = requestIDKey{}
)

// User retrieves the requester identity from the context. Returns nil if not set.
func User(ctx context.Context) *identity.User {
	if u, ok := ctx.Value(ContextKeyUser).(*identity.User); ok {
		return u
	}
	return nil
}

// WithUser injects a requester identity into the context.
func WithUser(ctx context.Context, user *identity.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}
