package service

import (
	"context"
	"testing"

	"gazette/internal/models"
	"gazette/internal/repository"

	"github.com/stretchr/testify/require"
)

// Function-field stubs for the repository interfaces. Tests override only
// the calls they care about.

type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, string, models.Pagination) (models.PageResult[models.User], error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.User], error) {
	return s.listFn(ctx, search, p)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ string, p models.Pagination) (models.PageResult[models.User], error) {
			return models.NewPageResult[models.User](nil, 0, p), nil
		},
	}
}

type categoryRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Category, error)
	getBySlugFn  func(context.Context, string) (*models.Category, error)
	createFn     func(context.Context, *models.Category) error
	updateFn     func(context.Context, *models.Category) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, string, models.Pagination) (models.PageResult[models.Category], error)
	countPostsFn func(context.Context, uint) (int64, error)
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) Create(ctx context.Context, c *models.Category) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) Update(ctx context.Context, c *models.Category) error {
	return s.updateFn(ctx, c)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *categoryRepoStub) List(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.Category], error) {
	return s.listFn(ctx, search, p)
}
func (s *categoryRepoStub) CountPosts(ctx context.Context, id uint) (int64, error) {
	return s.countPostsFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		getByIDFn:   func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		getBySlugFn: func(_ context.Context, s string) (*models.Category, error) { return &models.Category{Slug: s}, nil },
		createFn: func(_ context.Context, c *models.Category) error {
			c.ID = 1
			return nil
		},
		updateFn: func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ string, p models.Pagination) (models.PageResult[models.Category], error) {
			return models.NewPageResult[models.Category](nil, 0, p), nil
		},
		countPostsFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

type postRepoStub struct {
	createFn    func(context.Context, *models.Post) error
	getByIDFn   func(context.Context, uint) (*models.Post, error)
	getBySlugFn func(context.Context, string) (*models.Post, error)
	updateFn    func(context.Context, *models.Post) error
	deleteFn    func(context.Context, uint) error
	listFn      func(context.Context, repository.PostFilter, models.Pagination) (models.PageResult[models.Post], error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter, p models.Pagination) (models.PageResult[models.Post], error) {
	return s.listFn(ctx, f, p)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.PostStatusPublished}, nil
		},
		getBySlugFn: func(_ context.Context, s string) (*models.Post, error) {
			return &models.Post{Slug: s, Status: models.PostStatusPublished}, nil
		},
		updateFn:    func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.PostFilter, p models.Pagination) (models.PageResult[models.Post], error) {
			return models.NewPageResult[models.Post](nil, 0, p), nil
		},
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, models.Pagination) (models.PageResult[models.Comment], error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, p models.Pagination) (models.PageResult[models.Comment], error) {
	return s.listByPostFn(ctx, postID, p)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint, p models.Pagination) (models.PageResult[models.Comment], error) {
			return models.NewPageResult[models.Comment](nil, 0, p), nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// Kind assertion helpers shared across the service tests.

func assertErrorKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, kind, appErr.Kind)
}

func assertValidationError(t *testing.T, err error) {
	assertErrorKind(t, err, models.KindValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	assertErrorKind(t, err, models.KindForbidden)
}

func assertConflictError(t *testing.T, err error) {
	assertErrorKind(t, err, models.KindConflict)
}

func assertUnauthenticatedError(t *testing.T, err error) {
	assertErrorKind(t, err, models.KindUnauthenticated)
}
