package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated user's id, set by AuthnMiddleware.
	CtxKeyUserID ctxKey = "user_id"
)

// UserIDFromContext returns the authenticated user's id, or "" when the
// request did not pass authentication middleware.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}
