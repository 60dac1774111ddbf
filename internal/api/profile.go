package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"notes_system/internal/domain"     // Importing domain models
	"notes_system/internal/middleware" // Auth gate

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ProfileHandler returns any user's profile by numeric id, including the
// stored session token.
//
// IDOR VULNERABILITY: no auth gate is applied and the caller's identity is
// never checked. This endpoint is the broken-access-control exercise the
// service exists for — it must stay broken.
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the numeric id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var user domain.User // Fetch user by primary key
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Full profile, stored session token included
		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,       // User ID
			"username": user.Username, // Username
			"email":    user.Email,    // Email address
			"role":     user.Role,     // User role
			"jwt":      user.JWTToken, // Last issued session token
		})
	}
}

// UpdateProfileRequest uses pointers so absent fields are left untouched
type UpdateProfileRequest struct {
	Username *string `json:"username"` // New username, optional
	Email    *string `json:"email"`    // New email, optional
	Password *string `json:"password"` // New password, optional; empty means no change
}

// UpdateProfileHandler updates the caller's own profile fields
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Identity comes from the auth gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Username != nil {
			user.Username = *req.Username // Update username
		}
		if req.Email != nil {
			user.Email = *req.Email // Update email
		}
		// Empty password means "leave unchanged"
		if req.Password != nil && *req.Password != "" {
			user.Password = *req.Password // Update password, still plaintext
		}
		// No uniqueness re-check against other users here; registration is
		// the only path that validates username/email collisions
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		// Return the updated public shape
		c.JSON(http.StatusOK, gin.H{"success": true, "user": userResponse(user)})
	}
}
