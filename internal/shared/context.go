package shared

import "context"

type actorContextKey struct{}

// ContextWithActorID stores the acting account id in context.
func ContextWithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, id)
}

// ActorIDFromContext extracts the acting account id from context.
func ActorIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(actorContextKey{}).(string)
	return id
}
