package services

import (
	"context"
	"log/slog"
)

type actorKey struct{}

// ContextWithActor records the id of the user performing the operation; it
// only ends up in log lines.
func ContextWithActor(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(actorKey{}).(int)
	return id, ok
}

// actorAttr is empty when no actor is known; slog handlers drop empty attrs.
func actorAttr(ctx context.Context) slog.Attr {
	if id, ok := actorFromContext(ctx); ok {
		return slog.Int("actor_id", id)
	}
	return slog.Attr{}
}
