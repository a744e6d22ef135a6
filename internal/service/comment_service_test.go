package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"simpleforum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{PostID: 1, Text: strings.Repeat("x", maxTextLen+1)})
		assertValidationError(t, err)
	})

	t.Run("post must exist", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		_, err := NewCommentService(noopCommentRepo(), posts).CreateComment(ctx, CreateCommentInput{PostID: 99, Text: "hi"})
		assertValidationError(t, err)
		assert.Equal(t, "Post with id 99 does not exist", err.Error())
	})

	t.Run("parent must exist", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return nil, nil }
		_, err := NewCommentService(comments, noopPostRepo()).CreateComment(ctx, CreateCommentInput{
			PostID: 1, ParentID: uintPtr(5), Text: "hi",
		})
		assertValidationError(t, err)
		assert.Equal(t, "Comment with id 5 does not exist", err.Error())
	})

	t.Run("parent must belong to the same post", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 2}, nil
		}
		comments.createFn = func(context.Context, models.Comment) (*models.Comment, error) {
			t.Fatal("create must not run for a foreign parent")
			return nil, nil
		}
		_, err := NewCommentService(comments, noopPostRepo()).CreateComment(ctx, CreateCommentInput{
			PostID: 1, ParentID: uintPtr(5), Text: "hi",
		})
		assertValidationError(t, err)
	})
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c models.Comment) (*models.Comment, error) {
		c.ID = 42
		return &c, nil
	}

	got, err := NewCommentService(comments, noopPostRepo()).CreateComment(context.Background(), CreateCommentInput{
		PostID:   1,
		ParentID: uintPtr(7),
		Text:     "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.ID)
	assert.Equal(t, uint(7), *got.ParentID)
	assert.Equal(t, []uint{}, got.Children)
}

func TestCommentService_GetComment(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.childIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{3, 4}, nil }
	got, err := NewCommentService(comments, noopPostRepo()).GetComment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 4}, got.Children)

	comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return nil, nil }
	_, err = NewCommentService(comments, noopPostRepo()).GetComment(context.Background(), 1)
	assertNotFoundError(t, err)
}

func TestCommentService_ListPostComments_PostMissing(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	_, err := NewCommentService(noopCommentRepo(), posts).ListPostComments(context.Background(), 3)
	assertNotFoundError(t, err)
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("text required", func(t *testing.T) {
		t.Parallel()
		_, err := NewCommentService(noopCommentRepo(), noopPostRepo()).UpdateComment(context.Background(), UpdateCommentInput{CommentID: 1})
		assertValidationError(t, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		_, err := NewCommentService(comments, noopPostRepo()).UpdateComment(context.Background(), UpdateCommentInput{
			CommentID: 1, Text: strPtr("new"),
		})
		assertNotFoundError(t, err)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("deadlock")
		comments := noopCommentRepo()
		comments.updateFn = func(context.Context, uint, models.Fields) (*models.Comment, error) { return nil, repoErr }
		_, err := NewCommentService(comments, noopPostRepo()).UpdateComment(context.Background(), UpdateCommentInput{
			CommentID: 1, Text: strPtr("new"),
		})
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestCommentService_DeleteComment_NotFound(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	assertNotFoundError(t, NewCommentService(comments, noopPostRepo()).DeleteComment(context.Background(), 1))
}
