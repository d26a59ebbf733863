package auth

import "context"

type ctxKeyUserID struct{}

// WithUserID stores the authenticated user's id on the request context.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, uid)
}

// UserIDFrom extracts the authenticated user's id from the request context.
func UserIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxKeyUserID{})
	if v == nil {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}
