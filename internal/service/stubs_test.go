package service

import (
	"context"
	"testing"

	"simpleforum/internal/models"

	"github.com/stretchr/testify/assert"
)

// sectionRepoStub is a stub for repository.SectionRepository.
type sectionRepoStub struct {
	createFn  func(context.Context, models.Section) (*models.Section, error)
	updateFn  func(context.Context, uint, models.Fields) (*models.Section, error)
	getByIDFn func(context.Context, uint) (*models.Section, error)
	existsFn  func(context.Context, uint) (bool, error)
	deleteFn  func(context.Context, uint) error
	findFn    func(context.Context, string, int, int) (*models.Page[models.Section], error)
}

func (s *sectionRepoStub) Create(ctx context.Context, section models.Section) (*models.Section, error) {
	return s.createFn(ctx, section)
}
func (s *sectionRepoStub) Update(ctx context.Context, id uint, fields models.Fields) (*models.Section, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *sectionRepoStub) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	return s.getByIDFn(ctx, id)
}
func (s *sectionRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *sectionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *sectionRepoStub) Find(ctx context.Context, like string, pageNum, perPage int) (*models.Page[models.Section], error) {
	return s.findFn(ctx, like, pageNum, perPage)
}

func noopSectionRepo() *sectionRepoStub {
	return &sectionRepoStub{
		createFn: func(_ context.Context, s models.Section) (*models.Section, error) {
			s.ID = 1
			return &s, nil
		},
		updateFn: func(_ context.Context, id uint, _ models.Fields) (*models.Section, error) {
			return &models.Section{ID: id}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Section, error) { return &models.Section{ID: id}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		findFn: func(_ context.Context, _ string, pageNum, perPage int) (*models.Page[models.Section], error) {
			return &models.Page[models.Section]{Items: []models.Section{}, PageNum: pageNum, PerPage: perPage}, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, models.Post) (*models.Post, error)
	updateFn  func(context.Context, uint, models.Fields) (*models.Post, error)
	getByIDFn func(context.Context, uint) (*models.Post, error)
	existsFn  func(context.Context, uint) (bool, error)
	deleteFn  func(context.Context, uint) error
	findFn    func(context.Context, string, int, int) (*models.Page[models.Post], error)
}

func (s *postRepoStub) Create(ctx context.Context, post models.Post) (*models.Post, error) {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, fields models.Fields) (*models.Post, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Find(ctx context.Context, like string, pageNum, perPage int) (*models.Page[models.Post], error) {
	return s.findFn(ctx, like, pageNum, perPage)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p models.Post) (*models.Post, error) {
			p.ID = 1
			return &p, nil
		},
		updateFn: func(_ context.Context, id uint, _ models.Fields) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		findFn: func(_ context.Context, _ string, pageNum, perPage int) (*models.Page[models.Post], error) {
			return &models.Page[models.Post]{Items: []models.Post{}, PageNum: pageNum, PerPage: perPage}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn    func(context.Context, models.Comment) (*models.Comment, error)
	updateFn    func(context.Context, uint, models.Fields) (*models.Comment, error)
	getByIDFn   func(context.Context, uint) (*models.Comment, error)
	existsFn    func(context.Context, uint) (bool, error)
	deleteFn    func(context.Context, uint) error
	childIDsFn  func(context.Context, uint) ([]uint, error)
	listByPostFn func(context.Context, uint) ([]models.CommentWithChildren, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) Update(ctx context.Context, id uint, fields models.Fields) (*models.Comment, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ChildIDs(ctx context.Context, id uint) ([]uint, error) {
	return s.childIDsFn(ctx, id)
}
func (s *commentRepoStub) ListByPostWithChildren(ctx context.Context, postID uint) ([]models.CommentWithChildren, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c models.Comment) (*models.Comment, error) {
			c.ID = 1
			return &c, nil
		},
		updateFn: func(_ context.Context, id uint, _ models.Fields) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		getByIDFn:   func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id, PostID: 1}, nil },
		existsFn:    func(_ context.Context, _ uint) (bool, error) { return true, nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		childIDsFn:  func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.CommentWithChildren, error) { return nil, nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, models.IsValidation(err), "expected validation error, got %v", err)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, models.IsNotFound(err), "expected not found error, got %v", err)
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
