package server

import (
	"context"

	"simpleforum/internal/models"
	"simpleforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createSectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateSectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateSection godoc
// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Param section body createSectionRequest true "Section"
// @Success 201 {object} SectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /v1/sections [post]
func (s *Server) CreateSection(c *fiber.Ctx) error {
	var req createSectionRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var created *models.Section
	err := s.atomic(c, func(ctx context.Context) error {
		var err error
		created, err = s.sectionService.CreateSection(ctx, service.CreateSectionInput{
			Name:        req.Name,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(newSectionResponse(created))
}

// GetSections godoc
// @Summary List sections
// @Tags sections
// @Produce json
// @Param name__like query string false "Case-insensitive name substring"
// @Param page_num query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(25)
// @Success 200 {object} models.Page[SectionResponse]
// @Router /v1/sections [get]
func (s *Server) GetSections(c *fiber.Ctx) error {
	page, err := s.sectionService.ListSections(c.UserContext(), parseListInput(c, "name__like"))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(newSectionPage(page))
}

// GetSection godoc
// @Summary Get a section
// @Tags sections
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} SectionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/sections/{id} [get]
func (s *Server) GetSection(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	section, err := s.sectionService.GetSection(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(newSectionResponse(section))
}

// UpdateSection godoc
// @Summary Update a section
// @Description Only the fields present in the body are changed.
// @Tags sections
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param section body updateSectionRequest true "Fields to change"
// @Success 200 {object} SectionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/sections/{id} [put]
func (s *Server) UpdateSection(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateSectionRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var updated *models.Section
	err = s.atomic(c, func(ctx context.Context) error {
		var err error
		updated, err = s.sectionService.UpdateSection(ctx, service.UpdateSectionInput{
			SectionID:   id,
			Name:        req.Name,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(newSectionResponse(updated))
}

// DeleteSection godoc
// @Summary Delete a section with its posts and comments
// @Tags sections
// @Param id path int true "Section ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/sections/{id} [delete]
func (s *Server) DeleteSection(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.atomic(c, func(ctx context.Context) error {
		return s.sectionService.DeleteSection(ctx, id)
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
