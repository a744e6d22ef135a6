package service

import (
	"context"

	"simpleforum/internal/models"
	"simpleforum/internal/repository"
)

type SectionService struct {
	sectionRepo repository.SectionRepository
}

type CreateSectionInput struct {
	Name        string
	Description string
}

// UpdateSectionInput carries only the fields to change; nil means keep.
type UpdateSectionInput struct {
	SectionID   uint
	Name        *string
	Description *string
}

func NewSectionService(sectionRepo repository.SectionRepository) *SectionService {
	return &SectionService{sectionRepo: sectionRepo}
}

func (s *SectionService) CreateSection(ctx context.Context, in CreateSectionInput) (*models.Section, error) {
	if err := requireText("name", in.Name, maxNameLen); err != nil {
		return nil, err
	}
	if err := requireText("description", in.Description, maxDescriptionLen); err != nil {
		return nil, err
	}

	return s.sectionRepo.Create(ctx, models.Section{
		Name:        in.Name,
		Description: in.Description,
	})
}

func (s *SectionService) GetSection(ctx context.Context, id uint) (*models.Section, error) {
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, models.NewNotFoundError("Section", id)
	}
	return section, nil
}

func (s *SectionService) ListSections(ctx context.Context, in ListInput) (*models.Page[models.Section], error) {
	in = pageDefaults(in)
	return s.sectionRepo.Find(ctx, in.Like, in.PageNum, in.PerPage)
}

func (s *SectionService) UpdateSection(ctx context.Context, in UpdateSectionInput) (*models.Section, error) {
	if in.Name != nil {
		if err := requireText("name", *in.Name, maxNameLen); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := requireText("description", *in.Description, maxDescriptionLen); err != nil {
			return nil, err
		}
	}

	ok, err := s.sectionRepo.Exists(ctx, in.SectionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Section", in.SectionID)
	}

	fields := models.Fields{}
	models.SetIfPresent(fields, "name", in.Name)
	models.SetIfPresent(fields, "description", in.Description)

	section, err := s.sectionRepo.Update(ctx, in.SectionID, fields)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, models.NewNotFoundError("Section", in.SectionID)
	}
	return section, nil
}

func (s *SectionService) DeleteSection(ctx context.Context, id uint) error {
	ok, err := s.sectionRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Section", id)
	}
	return s.sectionRepo.Delete(ctx, id)
}
