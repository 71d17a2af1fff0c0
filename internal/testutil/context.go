package testutil

import (
	"context"

	"github.com/digiserve/digiserve/internal/types"
)

// SetupContext returns a context carrying an administrator actor, the way
// the request middleware would populate it
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = types.SetActorID(ctx, types.DefaultActorID)
	ctx = types.SetActorRole(ctx, string(types.RoleAdministrator))
	return ctx
}
