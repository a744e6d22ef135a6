package server

import (
	"context"

	"simpleforum/internal/models"
	"simpleforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	PostID   uint   `json:"post_id"`
	ParentID *uint  `json:"parent_id"`
	Text     string `json:"text"`
}

type updateCommentRequest struct {
	Text *string `json:"text"`
}

// CreateComment godoc
// @Summary Comment on a post, optionally replying to another comment
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body createCommentRequest true "Comment"
// @Success 201 {object} models.CommentWithChildren
// @Failure 400 {object} models.ErrorResponse
// @Router /v1/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var created *models.CommentWithChildren
	err := s.atomic(c, func(ctx context.Context) error {
		var err error
		created, err = s.commentService.CreateComment(ctx, service.CreateCommentInput{
			PostID:   req.PostID,
			ParentID: req.ParentID,
			Text:     req.Text,
		})
		return err
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(withChildren(created))
}

// GetPostComments godoc
// @Summary List every comment of a post with its direct reply ids
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.CommentWithChildren
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/posts/{id}/comments [get]
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListPostComments(c.UserContext(), postID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	if comments == nil {
		comments = []models.CommentWithChildren{}
	}
	return c.JSON(comments)
}

// GetComment godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.CommentWithChildren
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/comments/{id} [get]
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(withChildren(comment))
}

// UpdateComment godoc
// @Summary Edit a comment's text
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param comment body updateCommentRequest true "New text"
// @Success 200 {object} models.CommentWithChildren
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var updated *models.CommentWithChildren
	err = s.atomic(c, func(ctx context.Context) error {
		var err error
		updated, err = s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
			CommentID: id,
			Text:      req.Text,
		})
		return err
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(withChildren(updated))
}

// DeleteComment godoc
// @Summary Delete a comment and its replies
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.atomic(c, func(ctx context.Context) error {
		return s.commentService.DeleteComment(ctx, id)
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
