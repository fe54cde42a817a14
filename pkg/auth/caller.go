package auth

import "context"

// Caller is the authenticated identity of a request, resolved once by
// the transport layer. Domain operations receive the caller id as an
// explicit argument; nothing inside the services reads ambient state.
type Caller struct {
	ID    string
	Email string
	Role  string
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}
