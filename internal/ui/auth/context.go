package auth

import (
	"context"
)

type contextKey struct {
	name string
}

var sessionKey = contextKey{"session"}

func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func ContextSession(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)
	return session, ok
}
