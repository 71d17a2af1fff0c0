package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// RequireAdministrator guards routes reserved for administrators. The
// core trusts the role header placed by the outer auth layer; it never
// resolves sessions itself.
func RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := types.GetActorRole(c.Request.Context())
		if role != string(types.RoleAdministrator) {
			c.Error(ierr.NewError("administrator role required").
				WithHint("This operation requires an administrator account").
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}
