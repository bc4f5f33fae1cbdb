package token

import (
	"context"
	"strings"

	"openconext.org/invite/internal/authority"
)

type ctxKey string

const (
	userIDKey    ctxKey = "token_user_id"
	authorityKey ctxKey = "token_authority"
)

// ContextWithCaller stores the authenticated caller identity in the context.
func ContextWithCaller(ctx context.Context, userID string, auth authority.Authority) context.Context {
	ctx = context.WithValue(ctx, userIDKey, strings.TrimSpace(userID))
	if auth != "" {
		ctx = context.WithValue(ctx, authorityKey, auth)
	}
	return ctx
}

// UserIDFromContext extracts the authenticated caller id from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(userIDKey).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// AuthorityFromContext extracts the caller's displayed authority, if any.
func AuthorityFromContext(ctx context.Context) (authority.Authority, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(authorityKey).(authority.Authority)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
