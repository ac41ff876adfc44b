package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting admin user's ID in the Gin context.
const userIDKey = contextKey("userID")

// adminUserHeader carries the acting admin's identifier on each request.
// The gateway in front of this service fills it in after authentication.
const adminUserHeader = "X-Admin-User"

// defaultAdminUser is used when the header is absent, which only happens
// when the service is called directly in development.
const defaultAdminUser = "admin"

// AdminUserMiddleware resolves the acting user from the X-Admin-User header
// and stores it in both the Gin context and the request context for audit
// stamping downstream.
func AdminUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(adminUserHeader)
		if userID == "" {
			userID = defaultAdminUser
		}

		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, userID))

		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
