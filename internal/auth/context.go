// Package auth provides bearer-credential verification and the
// request-scoped subject identity.
package auth

import "context"

// Identity is the verified subject attached to an authenticated request.
// The email is established exclusively by a Verifier; it is never taken
// from a client-supplied field.
type Identity struct {
	Email string
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityKey contextKey = "identity"

// ContextWithIdentity adds the verified identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the verified identity from the context.
// Returns nil if the request was not authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// SubjectFromContext returns the verified subject email, or empty string
// if the request was not authenticated.
func SubjectFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.Email
}
