// Package models contains data structures for the application's domain models.
package models

import "time"

// User roles. The set is flat: no role implies another.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleUser   = "user"
)

// ValidRole reports whether role is one of the known role tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAuthor, RoleUser:
		return true
	}
	return false
}

// User represents an account: administrators, post authors, and readers.
// The password hash is excluded from JSON; this struct is the public
// projection. The internal projection (hash included) never leaves the
// service layer.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Posts    []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"posts,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// AuthorRef is the reduced author projection embedded in post responses.
type AuthorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Ref returns the reduced projection of the user.
func (u *User) Ref() AuthorRef {
	return AuthorRef{ID: u.ID, Name: u.Name}
}
