// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"gazette/internal/models"
	"gazette/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets, hashed once
// and reused so large seeds do not spend their time in bcrypt.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return &Factory{db: db, passwordHash: string(hash)}, nil
}

// CreateUser persists a user with fake identity data. Overrides run
// before the insert.
func (f *Factory) CreateUser(role string, overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(gofakeit.Username()) + "@example.com",
		PasswordHash: f.passwordHash,
		Role:         role,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateCategory persists a category named after the given topic.
func (f *Factory) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: gofakeit.Sentence(8),
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	return category, nil
}

// CreatePost persists a post with fake editorial content. Roughly two of
// three posts are published, the rest stay drafts.
func (f *Factory) CreatePost(author *models.User, category *models.Category, overrides ...func(*models.Post)) (*models.Post, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(gofakeit.Number(4, 8)), ".")
	status := models.PostStatusDraft
	if gofakeit.Number(0, 2) > 0 {
		status = models.PostStatusPublished
	}

	post := &models.Post{
		Title:      title,
		Slug:       slug.Make(title) + "-" + gofakeit.LetterN(6),
		Excerpt:    gofakeit.Sentence(12),
		Content:    gofakeit.Paragraph(3, 5, 40, "\n\n"),
		Status:     status,
		AuthorID:   &author.ID,
		CategoryID: category.ID,
	}
	if status == models.PostStatusPublished {
		publishedAt := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		post.PublishedAt = &publishedAt
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// CreateComment persists a comment on the post. A nil user produces a
// guest comment.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(gofakeit.Number(5, 20)),
		PostID:  post.ID,
	}
	if user != nil {
		comment.UserID = &user.ID
	} else {
		comment.GuestName = gofakeit.Name()
		comment.GuestEmail = strings.ToLower(gofakeit.Username()) + "@example.com"
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
