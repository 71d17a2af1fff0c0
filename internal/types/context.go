package types

import "context"

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxActorID   ContextKey = "ctx_actor_id"
	CtxActorRole ContextKey = "ctx_actor_role"

	// DefaultActorID is used for operations triggered outside a request,
	// e.g. cron jobs and scripts.
	DefaultActorID = "system"
)

// GetActorID returns the id of the account performing the current request.
// It is used only for audit fields; core operations always take explicit
// account ids as parameters.
func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(CtxActorID).(string); ok {
		return actorID
	}
	return ""
}

func GetActorRole(ctx context.Context) string {
	if role, ok := ctx.Value(CtxActorRole).(string); ok {
		return role
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetActorID sets the acting account id in the context
func SetActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, CtxActorID, actorID)
}

// SetActorRole sets the acting account role in the context
func SetActorRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, CtxActorRole, role)
}
