package repository

import (
	"context"

	"simpleforum/internal/models"

	"gorm.io/gorm"
)

// SectionRepository defines the interface for section data operations
type SectionRepository interface {
	Create(ctx context.Context, section models.Section) (*models.Section, error)
	Update(ctx context.Context, id uint, fields models.Fields) (*models.Section, error)
	GetByID(ctx context.Context, id uint) (*models.Section, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	Find(ctx context.Context, nameLike string, pageNum, perPage int) (*models.Page[models.Section], error)
}

type sectionRepository struct {
	db   *gorm.DB
	opts options
	inst instrument
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *gorm.DB, opts ...Option) SectionRepository {
	return &sectionRepository{
		db:   db,
		opts: buildOptions(opts),
		inst: newInstrument(db, "sections"),
	}
}

func (r *sectionRepository) Create(ctx context.Context, section models.Section) (out *models.Section, err error) {
	ctx, done := r.inst.start(ctx, "Create")
	defer func() { done(err) }()

	row := models.Section{Name: section.Name, Description: section.Description}
	if err = r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	r.inst.log.LogCreate(ctx, map[string]any{"id": row.ID})
	return getByID[models.Section](ctx, r.db, row.ID)
}

func (r *sectionRepository) Update(ctx context.Context, id uint, fields models.Fields) (out *models.Section, err error) {
	ctx, done := r.inst.start(ctx, "Update")
	defer func() { done(err) }()

	out, err = updateByID[models.Section](ctx, r.db, id, fields)
	if err == nil {
		r.inst.log.LogUpdate(ctx, map[string]any{"id": id, "fields": len(fields)})
	}
	return out, err
}

func (r *sectionRepository) GetByID(ctx context.Context, id uint) (out *models.Section, err error) {
	ctx, done := r.inst.start(ctx, "GetByID")
	defer func() { done(err) }()

	return getByID[models.Section](ctx, r.db, id)
}

func (r *sectionRepository) Exists(ctx context.Context, id uint) (ok bool, err error) {
	ctx, done := r.inst.start(ctx, "Exists")
	defer func() { done(err) }()

	return exists[models.Section](ctx, r.db, id)
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, done := r.inst.start(ctx, "Delete")
	defer func() { done(err) }()

	if err = deleteByID[models.Section](ctx, r.db, id); err == nil {
		r.inst.log.LogDelete(ctx, map[string]any{"id": id})
	}
	return err
}

// Find lists sections whose name contains nameLike (case-insensitive), newest first.
func (r *sectionRepository) Find(ctx context.Context, nameLike string, pageNum, perPage int) (page *models.Page[models.Section], err error) {
	ctx, done := r.inst.start(ctx, "Find")
	defer func() { done(err) }()

	query := r.db.Model(&models.Section{})
	if nameLike != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+nameLike+"%")
	}
	query = query.Order("created_at DESC").Order("updated_at DESC")

	return PaginateWithOffset[models.Section](ctx, query, pageNum, perPage, r.opts.offset)
}
