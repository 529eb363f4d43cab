package models

import (
	"encoding/json"
	"time"
)

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"

	// PostStatusAll is accepted as a filter value on privileged listings
	// and means "no status filter". It is never stored.
	PostStatusAll = "all"
)

// ValidPostStatus reports whether status is a storable post status.
func ValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post is a blog article. The author is nullable: deleting a user leaves
// their posts behind with no author. The category is required and cannot
// be deleted while posts reference it.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"not null" json:"excerpt"`
	Content     string     `gorm:"not null;type:text" json:"content"`
	ImageURL    string     `json:"image_url"`
	Status      string     `gorm:"not null;default:draft;index" json:"status"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`

	AuthorID   *uint     `json:"author_id"`
	Author     *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	CategoryID uint      `gorm:"not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Comments   []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON replaces the preloaded author and category with their reduced
// projections so account fields like email and role never reach API clients.
func (p Post) MarshalJSON() ([]byte, error) {
	type postAlias Post
	out := struct {
		postAlias
		Author   *AuthorRef   `json:"author,omitempty"`
		Category *CategoryRef `json:"category,omitempty"`
	}{postAlias: postAlias(p)}
	if p.Author != nil {
		ref := p.Author.Ref()
		out.Author = &ref
	}
	if p.Category != nil {
		ref := p.Category.Ref()
		out.Category = &ref
	}
	return json.Marshal(out)
}
