package domain

import "time" // Timestamps

// Note Model
type Note struct {
	ID        uint      `gorm:"primaryKey"`     // Primary key
	Title     string    `gorm:"not null"`       // Note title
	Content   string    `gorm:"type:text"`      // Note body
	UserID    uint      `gorm:"index;not null"` // Owning user, never reassigned
	CreatedAt time.Time // Set once at creation
	UpdatedAt time.Time // Refreshed by gorm on every save
}
