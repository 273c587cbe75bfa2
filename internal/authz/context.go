package authz

import "context"

type ctxKey struct{}

// Identity is the caller's authentication state for one request. The zero
// value is the anonymous caller.
type Identity struct {
	UserID   uint
	Username string
	IsStaff  bool
}

func (id Identity) Authenticated() bool { return id.UserID != 0 }

func IntoContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) Identity {
	if v := ctx.Value(ctxKey{}); v != nil {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}
