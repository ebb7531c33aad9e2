package middleware

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

const actorCtxKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated actor from the context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// WithActor returns a context carrying the given actor. Exposed for tests
// and for the auth middleware.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}
