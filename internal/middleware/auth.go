package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"notes_system/internal/domain" // Importing domain models
	"notes_system/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/golang-jwt/jwt/v5" // JWT library
	"gorm.io/gorm"                 // GORM ORM library
)

// CurrentUserKey is the gin context key holding the authenticated user record.
const CurrentUserKey = "currentUser"

// AuthMiddleware validates the session token and resolves it to a user record.
// The token is read from the jwt_token cookie first, then from the
// Authorization header, so non-browser clients can authenticate too.
func AuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("jwt_token") // Session cookie is the primary channel
		if err != nil || token == "" {
			// Fallback to the Authorization header
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token is missing"})
				return
			}
		}
		claims, err := utils.ParseJWT(token, secret) // Verify signature and expiry
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid"})
			}
			return
		}
		var user domain.User // Resolve the user_id claim to a record
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token user not found"})
			} else {
				// Any other fault during token resolution maps to a generic 401
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token processing error"})
			}
			return
		}
		c.Set(CurrentUserKey, &user) // Store the resolved user in context
		c.Next()                     // Proceed to the next handler
	}
}

// CurrentUser returns the user record resolved by AuthMiddleware. Handlers
// always take identity from here, never from request parameters.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
