package middleware

import (
	"net/http"
	"slices"

	"homecollect/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects callers whose role is not listed. It must run after
// JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if !slices.Contains(roles, role) {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "Role not allowed for this endpoint", role)
			return
		}
		c.Next()
	}
}
