package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the authenticated actor (JWT subject).
const actorKey = contextKey("actor")

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	if actor, ok := c.Request.Context().Value(actorKey).(string); ok && actor != "" {
		return actor, true
	}
	if val, exists := c.Get(string(actorKey)); exists {
		actor, ok := val.(string)
		return actor, ok && actor != ""
	}
	return "", false
}
