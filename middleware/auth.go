package middleware

import (
	"net/http"
	"strings"

	"homecollect/models"
	"homecollect/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's id and
// role on the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, role, err := utils.ExtractIdentity(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid token", err.Error())
			return
		}
		switch role {
		case models.RoleCustomer, models.RoleCollector, models.RoleAdmin:
		default:
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Unknown role in token", role)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequesterFrom returns the identity stored by JWTAuthMiddleware.
func RequesterFrom(c *gin.Context) models.Requester {
	return models.Requester{
		UserID: c.GetString(ContextUserID),
		Role:   c.GetString(ContextRole),
	}
}
