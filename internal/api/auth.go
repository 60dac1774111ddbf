package api

import (
	"net/http" // HTTP status codes
	"time"     // Cookie lifetime

	"notes_system/internal/config" // Application configuration
	"notes_system/internal/domain" // Importing domain models
	"notes_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Session cookie parameters; max age matches the token TTL
const (
	sessionCookieName   = "jwt_token"
	sessionCookieMaxAge = int(utils.TokenTTL / time.Second)
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UserResponse is the public user shape; the password and stored token are
// never part of it
type UserResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email address
	Role     string `json:"role"`     // User role
}

// userResponse maps a user record to its public shape
func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,       // User ID
		Username: u.Username, // Username
		Email:    u.Email,    // Email address
		Role:     u.Role,     // User role
	}
}

// setSessionCookie attaches the token as an http-only, SameSite=Lax cookie.
// Secure is only set in production so local development over plain HTTP works.
func setSessionCookie(c *gin.Context, token string, isProd bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, sessionCookieMaxAge, "/", "", isProd, true)
}

// clearSessionCookie expires the session cookie immediately
func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

// openSession issues a token for the user, stores it on the record and sets
// the session cookie. The stored token is reference only; previously issued
// tokens remain valid until they expire.
func openSession(c *gin.Context, db *gorm.DB, cfg *config.Config, user *domain.User) error {
	token, err := utils.GenerateJWT(user.ID, user.Role, cfg.JWTSecret)
	if err != nil {
		return err
	}
	if err := db.Model(user).Update("jwt_token", token).Error; err != nil {
		return err
	}
	user.JWTToken = token
	setSessionCookie(c, token, cfg.IsProd)
	return nil
}

// RegisterHandler creates a new user account and opens a session for it
func RegisterHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var existing domain.User // Check username uniqueness
		if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		// Check email uniqueness
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		// Password is stored exactly as provided: the whole service is a
		// deliberately vulnerable training target
		user := domain.User{
			Username: req.Username, // Username
			Email:    req.Email,    // Email address
			Password: req.Password, // Plaintext password
			Role:     "user",       // Registration always yields a regular user
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		// Issue the session token and set the cookie
		if err := openSession(c, db, cfg, &user); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to open session") // Log session failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User registered") // Log registration
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"success": true, "user": userResponse(&user)})
	}
}

// LoginHandler authenticates a user and opens a session for it
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Match username and password in one query so the response never
		// reveals whether the username exists on its own
		var user domain.User
		if err := db.Where("username = ? AND password = ?", req.Username, req.Password).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Issue the session token and set the cookie
		if err := openSession(c, db, cfg, &user); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to open session") // Log session failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User logged in") // Log login
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "user": userResponse(&user)})
	}
}

// LogoutHandler clears the session cookie. It requires no authentication and
// performs no server-side invalidation: a copied token stays valid until its
// natural expiry.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c)                         // Expire the cookie
		c.JSON(http.StatusOK, gin.H{"success": true}) // Always succeeds
	}
}
