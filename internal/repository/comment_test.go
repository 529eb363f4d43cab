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

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.Create(ctx, &models.Comment{Content: "Great recap", PostID: 5})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Post", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
			WillReturnError(errors.New(`insert or update on table "comments" violates foreign key constraint "fk_posts_comments" (SQLSTATE 23503)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.Comment{Content: "Orphan", PostID: 999})
		assert.Error(t, err)
		assert.Equal(t, 404, models.StatusForError(err))
	})
}

func TestCommentRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("Success with Preloads", func(t *testing.T) {
		commentRows := sqlmock.NewRows([]string{"id", "content", "user_id", "post_id"}).
			AddRow(9, "Great recap", 2, 5)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1 ORDER BY "comments"."id" LIMIT $2`)).
			WithArgs(9, 1).
			WillReturnRows(commentRows)

		postRows := sqlmock.NewRows([]string{"id", "title", "author_id"}).AddRow(5, "Oscar Night Recap!", 1)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(5).
			WillReturnRows(postRows)

		userRows := sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Bob")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(2).
			WillReturnRows(userRows)

		comment, err := repo.GetByID(ctx, 9)
		assert.NoError(t, err)
		require.NotNil(t, comment)
		require.NotNil(t, comment.User)
		assert.Equal(t, "Bob", comment.User.Name)
		require.NotNil(t, comment.Post)
		assert.Equal(t, uint(5), comment.Post.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		comment, err := repo.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Nil(t, comment)
		assert.Equal(t, 404, models.StatusForError(err))
	})
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" WHERE post_id = $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE post_id = $1 ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	page, err := repo.ListByPost(ctx, 5, models.Pagination{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 9))
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 99)
		assert.Error(t, err)
		assert.Equal(t, 404, models.StatusForError(err))
	})
}
