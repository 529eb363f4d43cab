package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"gazette/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Success with Preloads", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "title", "slug", "status", "author_id", "category_id"}).
			AddRow(5, "Oscar Night Recap!", "oscar-night-recap", models.PostStatusPublished, 1, 3)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(5, 1).
			WillReturnRows(postRows)

		authorRows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Alice")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(1).
			WillReturnRows(authorRows)

		categoryRows := sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(3, "Celebrities", "celebrities")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE "categories"."id" = $1`)).
			WithArgs(3).
			WillReturnRows(categoryRows)

		post, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, "oscar-night-recap", post.Slug)
		require.NotNil(t, post.Author)
		assert.Equal(t, "Alice", post.Author.Name)
		require.NotNil(t, post.Category)
		assert.Equal(t, "Celebrities", post.Category.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Equal(t, 404, models.StatusForError(err))
	})
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Duplicate Slug", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_posts_slug" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.Post{Title: "Oscar Night Recap!", Slug: "oscar-night-recap", CategoryID: 3})
		assert.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.KindConflict, appErr.Kind)
		assert.Equal(t, "slug", appErr.Field)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
			WillReturnError(errors.New(`insert or update on table "posts" violates foreign key constraint "fk_categories_posts" (SQLSTATE 23503)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.Post{Title: "Orphan", Slug: "orphan", CategoryID: 999})
		assert.Error(t, err)
		assert.Equal(t, 400, models.StatusForError(err))
	})
}

func TestPostRepository_List_Filters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Status and Category", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE status = $1 AND category_id = $2`)).
			WithArgs(models.PostStatusPublished, 3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE status = $1 AND category_id = $2 ORDER BY created_at DESC LIMIT $3`)).
			WithArgs(models.PostStatusPublished, 3, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		page, err := repo.List(ctx,
			PostFilter{Status: models.PostStatusPublished, CategoryID: 3},
			models.Pagination{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), page.TotalItems)
		assert.Equal(t, 0, page.TotalPages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Status All Disables Filter", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC LIMIT $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx, PostFilter{Status: models.PostStatusAll}, models.Pagination{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Search Lowers Pattern", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE LOWER(title) LIKE $1 OR LOWER(excerpt) LIKE $2 OR LOWER(content) LIKE $3`)).
			WithArgs("%oscar%", "%oscar%", "%oscar%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE LOWER(title) LIKE $1 OR LOWER(excerpt) LIKE $2 OR LOWER(content) LIKE $3 ORDER BY created_at DESC LIMIT $4`)).
			WithArgs("%oscar%", "%oscar%", "%oscar%", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx, PostFilter{Search: "Oscar"}, models.Pagination{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Sort Whitelist", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY title ASC LIMIT $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx,
			PostFilter{Status: models.PostStatusAll, SortBy: "title", SortOrder: "asc"},
			models.Pagination{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Sort Falls Back", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC LIMIT $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx,
			PostFilter{Status: models.PostStatusAll, SortBy: "password_hash; DROP TABLE posts"},
			models.Pagination{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(ctx, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
