package server

import (
	"context"

	"simpleforum/internal/models"
	"simpleforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	SectionID   uint   `json:"section_id"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type updatePostRequest struct {
	Topic       *string `json:"topic"`
	Description *string `json:"description"`
}

// CreatePost godoc
// @Summary Create a post in a section
// @Tags posts
// @Accept json
// @Produce json
// @Param post body createPostRequest true "Post"
// @Success 201 {object} models.PostWithComments
// @Failure 400 {object} models.ErrorResponse
// @Router /v1/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var created *models.PostWithComments
	err := s.atomic(c, func(ctx context.Context) error {
		var err error
		created, err = s.postService.CreatePost(ctx, service.CreatePostInput{
			SectionID:   req.SectionID,
			Topic:       req.Topic,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(withComments(created))
}

// GetPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param topic__like query string false "Case-insensitive topic substring"
// @Param page_num query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(25)
// @Success 200 {object} models.Page[models.Post]
// @Router /v1/posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListPosts(c.UserContext(), parseListInput(c, "topic__like"))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost godoc
// @Summary Get a post with its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostWithComments
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(withComments(post))
}

// UpdatePost godoc
// @Summary Update a post
// @Description Only the fields present in the body are changed.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body updatePostRequest true "Fields to change"
// @Success 200 {object} models.PostWithComments
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var updated *models.PostWithComments
	err = s.atomic(c, func(ctx context.Context) error {
		var err error
		updated, err = s.postService.UpdatePost(ctx, service.UpdatePostInput{
			PostID:      id,
			Topic:       req.Topic,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(withComments(updated))
}

// DeletePost godoc
// @Summary Delete a post with its comments
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.atomic(c, func(ctx context.Context) error {
		return s.postService.DeletePost(ctx, id)
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
