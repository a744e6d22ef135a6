package service

import (
	"context"
	"fmt"

	"simpleforum/internal/models"
	"simpleforum/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	sectionRepo repository.SectionRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	SectionID   uint
	Topic       string
	Description string
}

// UpdatePostInput carries only the fields to change; nil means keep.
type UpdatePostInput struct {
	PostID      uint
	Topic       *string
	Description *string
}

func NewPostService(
	postRepo repository.PostRepository,
	sectionRepo repository.SectionRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		sectionRepo: sectionRepo,
		commentRepo: commentRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostWithComments, error) {
	if in.SectionID == 0 {
		return nil, models.NewValidationError("section_id is required")
	}
	if err := requireText("topic", in.Topic, maxTopicLen); err != nil {
		return nil, err
	}
	if err := limitText("description", in.Description, maxDescriptionLen); err != nil {
		return nil, err
	}

	ok, err := s.sectionRepo.Exists(ctx, in.SectionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewValidationError(fmt.Sprintf(
			"Can not create post. Section with id %d does not exist", in.SectionID))
	}

	post, err := s.postRepo.Create(ctx, models.Post{
		SectionID:   in.SectionID,
		Topic:       in.Topic,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	return &models.PostWithComments{Post: *post, Comments: []models.CommentWithChildren{}}, nil
}

// GetPost returns the post with every comment and its direct reply ids.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.PostWithComments, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return s.withComments(ctx, post)
}

func (s *PostService) ListPosts(ctx context.Context, in ListInput) (*models.Page[models.Post], error) {
	in = pageDefaults(in)
	return s.postRepo.Find(ctx, in.Like, in.PageNum, in.PerPage)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.PostWithComments, error) {
	if in.Topic != nil {
		if err := requireText("topic", *in.Topic, maxTopicLen); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := limitText("description", *in.Description, maxDescriptionLen); err != nil {
			return nil, err
		}
	}

	ok, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	fields := models.Fields{}
	models.SetIfPresent(fields, "topic", in.Topic)
	models.SetIfPresent(fields, "description", in.Description)

	post, err := s.postRepo.Update(ctx, in.PostID, fields)
	if err != nil {
		return nil, err
	}
	if post == nil {
		// Deleted between the check and the reload.
		return nil, models.NewNotFoundError("Post", in.PostID)
	}
	return s.withComments(ctx, post)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	ok, err := s.postRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", id)
	}
	return s.postRepo.Delete(ctx, id)
}

func (s *PostService) withComments(ctx context.Context, post *models.Post) (*models.PostWithComments, error) {
	comments, err := s.commentRepo.ListByPostWithChildren(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.CommentWithChildren{}
	}
	return &models.PostWithComments{Post: *post, Comments: comments}, nil
}
