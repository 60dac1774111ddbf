package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Username string `gorm:"unique;not null"` // Unique username
	Email    string `gorm:"unique;not null"` // Unique email address
	Password string `gorm:"not null"`        // Stored in plain text: this is the training target, do not hash
	Role     string `gorm:"default:user"`    // Role: user or admin
	JWTToken string // Last issued session token, kept for reference; older tokens stay valid
	Notes    []Note // One-to-many relationship with Note
}
