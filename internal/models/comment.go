package models

import (
	"encoding/json"
	"time"
)

// Comment belongs to a post and either to a registered user or, when
// UserID is nil, to a guest identified by GuestName (required) and
// GuestEmail (optional, stored lowercase).
type Comment struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Content    string  `gorm:"not null;type:text" json:"content"`
	GuestName  string  `json:"guest_name,omitempty"`
	GuestEmail string  `json:"guest_email,omitempty"`
	UserID     *uint   `gorm:"index" json:"user_id"`
	User       *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PostID     uint    `gorm:"not null;index" json:"post_id"`
	Post       *Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON replaces the preloaded commenter with the reduced projection;
// registered commenters expose only their id and name.
func (cm Comment) MarshalJSON() ([]byte, error) {
	type commentAlias Comment
	out := struct {
		commentAlias
		User *AuthorRef `json:"user,omitempty"`
	}{commentAlias: commentAlias(cm)}
	if cm.User != nil {
		ref := cm.User.Ref()
		out.User = &ref
	}
	return json.Marshal(out)
}
