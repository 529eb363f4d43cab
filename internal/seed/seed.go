package seed

import (
	"fmt"
	"log/slog"

	"gazette/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls the shape of a seeding run.
type Options struct {
	NumAuthors  int
	NumReaders  int
	NumPosts    int
	ShouldClean bool
}

// DefaultCategories are the editorial sections every seed run creates.
var DefaultCategories = []string{
	"Celebrities", "Movies & TV", "Music", "Fashion", "Royals",
}

// Seeder populates the database with demo accounts and content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder for the given database.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll deletes all seeded content. Comments go first so the foreign
// keys never block deletion.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{}, &models.Post{}, &models.Category{}, &models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	slog.Info("database cleared")
	return nil
}

// Run seeds the database: one well-known admin, the default categories,
// a mix of authors and readers, and posts with comment threads.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	admin, err := s.factory.CreateUser(models.RoleAdmin, func(u *models.User) {
		u.Name = "Site Admin"
		u.Email = "admin@gazette.local"
	})
	if err != nil {
		return err
	}

	categories := make([]*models.Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		category, err := s.factory.CreateCategory(name)
		if err != nil {
			return err
		}
		categories = append(categories, category)
	}

	authors := []*models.User{admin}
	for i := 0; i < opts.NumAuthors; i++ {
		author, err := s.factory.CreateUser(models.RoleAuthor)
		if err != nil {
			return err
		}
		authors = append(authors, author)
	}

	readers := make([]*models.User, 0, opts.NumReaders)
	for i := 0; i < opts.NumReaders; i++ {
		reader, err := s.factory.CreateUser(models.RoleUser)
		if err != nil {
			return err
		}
		readers = append(readers, reader)
	}

	var commentCount int
	for i := 0; i < opts.NumPosts; i++ {
		author := authors[gofakeit.Number(0, len(authors)-1)]
		category := categories[gofakeit.Number(0, len(categories)-1)]
		post, err := s.factory.CreatePost(author, category)
		if err != nil {
			return err
		}

		if post.Status != models.PostStatusPublished {
			continue
		}
		for j := gofakeit.Number(0, 5); j > 0; j-- {
			var commenter *models.User
			if len(readers) > 0 && gofakeit.Bool() {
				commenter = readers[gofakeit.Number(0, len(readers)-1)]
			}
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
			commentCount++
		}
	}

	slog.Info("seeding complete",
		"authors", len(authors),
		"readers", len(readers),
		"categories", len(categories),
		"posts", opts.NumPosts,
		"comments", commentCount,
	)
	return nil
}
