package middleware

import (
	"net/http"

	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

// RequireAdmin restricts a route group to the configured store
// administrator. There are no stored roles: the email claim of the
// authenticated user is compared against store.admin_email. Must run
// after JWTAuth.
func RequireAdmin(store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := GetJWTEmail(c)
		if email == "" || !store.IsAdmin(email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Administrator access required",
				},
			})
			return
		}
		c.Next()
	}
}
