package auth

import (
	"context"
)

// Anonymous is the identity of callers that presented no usable claims.
// It never matches a real owner, only records that were created anonymously.
const Anonymous = "anonymous"

// Principal is the caller a request acts on behalf of
type Principal struct {
	UserID string
	Admin  bool
}

// NewPrincipal resolves the admin flag against the configured admin identity
func NewPrincipal(userID, adminID string) Principal {
	if userID == "" {
		userID = Anonymous
	}
	return Principal{
		UserID: userID,
		Admin:  adminID != "" && userID == adminID,
	}
}

// CanActOn reports whether the principal may read or mutate a resource
// owned by ownerID.
func (p Principal) CanActOn(ownerID string) bool {
	return p.Admin || p.UserID == ownerID
}

// IsAnonymous reports whether no identity was established
func (p Principal) IsAnonymous() bool {
	return p.UserID == Anonymous
}

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal stores the principal in the context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the principal, or the anonymous one if the
// context carries none.
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalContextKey).(Principal); ok {
		return p
	}
	return Principal{UserID: Anonymous}
}
