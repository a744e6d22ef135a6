package service

import (
	"context"
	"fmt"

	"simpleforum/internal/models"
	"simpleforum/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID   uint
	ParentID *uint
	Text     string
}

type UpdateCommentInput struct {
	CommentID uint
	Text      *string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment to a post. A parent, when given, must be a
// comment of the same post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentWithChildren, error) {
	if in.PostID == 0 {
		return nil, models.NewValidationError("post_id is required")
	}
	if err := requireText("text", in.Text, maxTextLen); err != nil {
		return nil, err
	}

	ok, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewValidationError(fmt.Sprintf("Post with id %d does not exist", in.PostID))
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, models.NewValidationError(fmt.Sprintf("Comment with id %d does not exist", *in.ParentID))
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError(fmt.Sprintf(
				"Comment with id %d belongs to another post", *in.ParentID))
		}
	}

	comment, err := s.commentRepo.Create(ctx, models.Comment{
		PostID:   in.PostID,
		ParentID: in.ParentID,
		Text:     in.Text,
	})
	if err != nil {
		return nil, err
	}
	return &models.CommentWithChildren{Comment: *comment, Children: []uint{}}, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.CommentWithChildren, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", id)
	}
	return s.withChildren(ctx, comment)
}

func (s *CommentService) ListPostComments(ctx context.Context, postID uint) ([]models.CommentWithChildren, error) {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPostWithChildren(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.CommentWithChildren, error) {
	if in.Text == nil {
		return nil, models.NewValidationError("text is required")
	}
	if err := requireText("text", *in.Text, maxTextLen); err != nil {
		return nil, err
	}

	ok, err := s.commentRepo.Exists(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	comment, err := s.commentRepo.Update(ctx, in.CommentID, models.Fields{"text": *in.Text})
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	return s.withChildren(ctx, comment)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	ok, err := s.commentRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Comment", id)
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *CommentService) withChildren(ctx context.Context, comment *models.Comment) (*models.CommentWithChildren, error) {
	children, err := s.commentRepo.ChildIDs(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []uint{}
	}
	return &models.CommentWithChildren{Comment: *comment, Children: children}, nil
}
