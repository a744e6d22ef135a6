package service

import (
	"context"
	"errors"
	"testing"

	"simpleforum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("missing section is a validation error", func(t *testing.T) {
		t.Parallel()
		sections := noopSectionRepo()
		sections.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewPostService(noopPostRepo(), sections, noopCommentRepo())

		_, err := svc.CreatePost(context.Background(), CreatePostInput{SectionID: 4, Topic: "t"})
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "Section with id 4 does not exist")
	})

	t.Run("topic required", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopSectionRepo(), noopCommentRepo())
		_, err := svc.CreatePost(context.Background(), CreatePostInput{SectionID: 1})
		assertValidationError(t, err)
	})

	t.Run("created post has empty comments", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopSectionRepo(), noopCommentRepo())
		post, err := svc.CreatePost(context.Background(), CreatePostInput{SectionID: 1, Topic: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Topic)
		assert.NotNil(t, post.Comments)
		assert.Empty(t, post.Comments)
	})
}

func TestPostService_GetPost(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil }
		svc := NewPostService(posts, noopSectionRepo(), noopCommentRepo())

		_, err := svc.GetPost(context.Background(), 8)
		assertNotFoundError(t, err)
	})

	t.Run("embeds aggregated comments", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.listByPostFn = func(_ context.Context, postID uint) ([]models.CommentWithChildren, error) {
			return []models.CommentWithChildren{
				{Comment: models.Comment{ID: 1, PostID: postID}, Children: []uint{2}},
				{Comment: models.Comment{ID: 2, PostID: postID, ParentID: uintPtr(1)}, Children: []uint{}},
			}, nil
		}
		svc := NewPostService(noopPostRepo(), noopSectionRepo(), comments)

		post, err := svc.GetPost(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, post.Comments, 2)
		assert.Equal(t, []uint{2}, post.Comments[0].Children)
	})

	t.Run("aggregator errors propagate", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("timeout")
		comments := noopCommentRepo()
		comments.listByPostFn = func(_ context.Context, _ uint) ([]models.CommentWithChildren, error) {
			return nil, repoErr
		}
		svc := NewPostService(noopPostRepo(), noopSectionRepo(), comments)

		_, err := svc.GetPost(context.Background(), 3)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	t.Run("checks the post, not the section", func(t *testing.T) {
		t.Parallel()
		sections := noopSectionRepo()
		sections.existsFn = func(context.Context, uint) (bool, error) {
			t.Fatal("section existence must not decide a post update")
			return false, nil
		}
		posts := noopPostRepo()
		posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewPostService(posts, sections, noopCommentRepo())

		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 2, Topic: strPtr("x")})
		assertNotFoundError(t, err)
	})

	t.Run("partial update returns comments", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		var fields models.Fields
		posts.updateFn = func(_ context.Context, id uint, f models.Fields) (*models.Post, error) {
			fields = f
			return &models.Post{ID: id, Description: "kept", Topic: "x"}, nil
		}
		svc := NewPostService(posts, noopSectionRepo(), noopCommentRepo())

		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 2, Topic: strPtr("x")})
		require.NoError(t, err)
		assert.Equal(t, models.Fields{"topic": "x"}, fields)
		assert.NotNil(t, post.Comments)
	})
}

func TestPostService_DeletePost_NotFound(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	err := NewPostService(posts, noopSectionRepo(), noopCommentRepo()).DeletePost(context.Background(), 1)
	assertNotFoundError(t, err)
}
