package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey types the values this package stores in request contexts.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorKey     = contextKey("actor")
	scopesKey    = contextKey("scopes")
)

// GetActorFromContext returns the authenticated actor (the token subject) for the request.
func GetActorFromContext(c *gin.Context) (string, bool) {
	return ActorFromCtx(c.Request.Context())
}

// ActorFromCtx reads the actor from a standard context.
func ActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}

// WithActor stores the actor in ctx. Used by the auth middleware and by tests.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func scopesFromCtx(ctx context.Context) []string {
	scopes, _ := ctx.Value(scopesKey).([]string)
	return scopes
}
