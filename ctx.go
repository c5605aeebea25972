package subscribers

import (
	"context"

	"github.com/goliatone/go-router"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithContext sets the principal in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the principal from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// FromRouterContext finds the principal the Basic middleware stored in the
// router locals.
func FromRouterContext(c router.Context, key string) (*User, bool) {
	if key == "" {
		key = DefaultContextKey
	}

	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}

	user, ok := raw.(*User)
	return user, ok
}
