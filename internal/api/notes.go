package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"notes_system/internal/domain"     // Importing domain models
	"notes_system/internal/middleware" // Auth gate
	"notes_system/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// notesCacheTTL is how long a cached notes listing stays fresh
const notesCacheTTL = 60 * time.Second

// NoteRequest represents a note create/update request
type NoteRequest struct {
	Title   string `json:"title" binding:"required"`   // Title must be provided
	Content string `json:"content" binding:"required"` // Content must be provided
}

// NoteResponse represents a note as returned by the listing
type NoteResponse struct {
	ID        uint   `json:"id"`        // Note ID
	Title     string `json:"title"`     // Note title
	Content   string `json:"content"`   // Note body
	CreatedAt string `json:"createdAt"` // Creation timestamp
	UpdatedAt string `json:"updatedAt"` // Last mutation timestamp
}

// noteResponse maps a note record to its response shape
func noteResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,                                 // Note ID
		Title:     n.Title,                              // Note title
		Content:   n.Content,                            // Note body
		CreatedAt: n.CreatedAt.Format(time.RFC3339Nano), // Creation timestamp
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339Nano), // Last mutation timestamp
	}
}

// notesCacheKey builds the per-user cache key for the notes listing
func notesCacheKey(userID uint) string {
	return "notes:user:" + strconv.Itoa(int(userID))
}

// ListNotesHandler returns all notes owned by the caller
func ListNotesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Identity comes from the auth gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()          // Context for Redis operations
		cacheKey := notesCacheKey(user.ID)   // Cache key for this user's notes
		var cached []NoteResponse            // Cached listing
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var notes []domain.Note // Fetch the caller's notes from the database
		if err := db.Where("user_id = ?", user.ID).Find(&notes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
			return
		}
		// Map notes to the response shape
		resp := make([]NoteResponse, len(notes))
		for i := range notes {
			resp[i] = noteResponse(&notes[i])
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, notesCacheTTL) // Cache the listing
		c.JSON(http.StatusOK, resp)                                 // Return the listing
	}
}

// CreateNoteHandler creates a note owned by the caller
func CreateNoteHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Identity comes from the auth gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req NoteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Ownership is fixed at creation and never changes
		note := domain.Note{
			Title:   req.Title,   // Note title
			Content: req.Content, // Note body
			UserID:  user.ID,     // Owning user
		}
		// Save the new note
		if err := db.Create(&note).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
			return
		}
		// Log note creation
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Owning user
			"note_id": note.ID, // Note ID
		}).Info("Note created") // Log creation
		// Invalidate the caller's listing cache
		_ = utils.DeleteCache(context.Background(), rdb, notesCacheKey(user.ID))
		// Return the created note
		c.JSON(http.StatusCreated, gin.H{
			"id":        note.ID,                              // Note ID
			"title":     note.Title,                           // Note title
			"content":   note.Content,                         // Note body
			"createdAt": note.CreatedAt.Format(time.RFC3339Nano), // Creation timestamp
		})
	}
}

// UpdateNoteHandler replaces the title and content of a note owned by the
// caller. A note that does not exist and a note owned by someone else are
// both reported as 404 so callers cannot probe for foreign note ids.
func UpdateNoteHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Identity comes from the auth gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the note id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		var req NoteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var note domain.Note // Fetch the note
		if err := db.First(&note, id).Error; err != nil || note.UserID != user.ID {
			// Missing and not-owned are deliberately indistinguishable
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		note.Title = req.Title     // Replace title
		note.Content = req.Content // Replace content
		// Save refreshes UpdatedAt
		if err := db.Save(&note).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
			return
		}
		// Invalidate the caller's listing cache
		_ = utils.DeleteCache(context.Background(), rdb, notesCacheKey(user.ID))
		// Return the updated note
		c.JSON(http.StatusOK, gin.H{
			"id":        note.ID,                              // Note ID
			"title":     note.Title,                           // Note title
			"content":   note.Content,                         // Note body
			"updatedAt": note.UpdatedAt.Format(time.RFC3339Nano), // Last mutation timestamp
		})
	}
}

// DeleteNoteHandler removes a note owned by the caller, with the same
// ownership rule as UpdateNoteHandler
func DeleteNoteHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Identity comes from the auth gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the note id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		var note domain.Note // Fetch the note
		if err := db.First(&note, id).Error; err != nil || note.UserID != user.ID {
			// Missing and not-owned are deliberately indistinguishable
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		// Remove the note
		if err := db.Delete(&note).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
			return
		}
		// Log note deletion
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Owning user
			"note_id": note.ID, // Note ID
		}).Info("Note deleted") // Log deletion
		// Invalidate the caller's listing cache
		_ = utils.DeleteCache(context.Background(), rdb, notesCacheKey(user.ID))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
