package api

import (
	"notes_system/internal/config"     // Application configuration
	"notes_system/internal/middleware" // Auth gate

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route onto a gin engine. All dependencies are passed
// in explicitly; nothing is read from package state.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance with logger and recovery

	// The browser frontend runs on a different origin and sends the session
	// cookie, so credentialed CORS is required
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Auth routes
	r.POST("/register", RegisterHandler(db, cfg)) // Registration endpoint
	r.POST("/login", LoginHandler(db, cfg))       // Login endpoint
	r.POST("/logout", LogoutHandler())            // Logout endpoint

	// IDOR VULNERABILITY: deliberately left outside the auth gate
	r.GET("/user/profile/:id", ProfileHandler(db)) // Profile fetch endpoint

	// Protected routes
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(db, cfg.JWTSecret))
	authed.PUT("/profile", UpdateProfileHandler(db))        // Profile update endpoint
	authed.GET("/notes", ListNotesHandler(db, rdb))         // List notes endpoint
	authed.POST("/notes", CreateNoteHandler(db, rdb))       // Create note endpoint
	authed.PUT("/notes/:id", UpdateNoteHandler(db, rdb))    // Update note endpoint
	authed.DELETE("/notes/:id", DeleteNoteHandler(db, rdb)) // Delete note endpoint

	return r
}
