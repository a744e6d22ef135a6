package repository

import (
	"context"

	"simpleforum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post models.Post) (*models.Post, error)
	Update(ctx context.Context, id uint, fields models.Fields) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	Find(ctx context.Context, topicLike string, pageNum, perPage int) (*models.Page[models.Post], error)
}

type postRepository struct {
	db   *gorm.DB
	opts options
	inst instrument
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB, opts ...Option) PostRepository {
	return &postRepository{
		db:   db,
		opts: buildOptions(opts),
		inst: newInstrument(db, "posts"),
	}
}

func (r *postRepository) Create(ctx context.Context, post models.Post) (out *models.Post, err error) {
	ctx, done := r.inst.start(ctx, "Create")
	defer func() { done(err) }()

	row := models.Post{SectionID: post.SectionID, Topic: post.Topic, Description: post.Description}
	if err = r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, err
	}
	r.inst.log.LogCreate(ctx, map[string]any{"id": row.ID, "section_id": row.SectionID})
	return getByID[models.Post](ctx, r.db, row.ID)
}

func (r *postRepository) Update(ctx context.Context, id uint, fields models.Fields) (out *models.Post, err error) {
	ctx, done := r.inst.start(ctx, "Update")
	defer func() { done(err) }()

	out, err = updateByID[models.Post](ctx, r.db, id, fields)
	if err == nil {
		r.inst.log.LogUpdate(ctx, map[string]any{"id": id, "fields": len(fields)})
	}
	return out, err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (out *models.Post, err error) {
	ctx, done := r.inst.start(ctx, "GetByID")
	defer func() { done(err) }()

	return getByID[models.Post](ctx, r.db, id)
}

func (r *postRepository) Exists(ctx context.Context, id uint) (ok bool, err error) {
	ctx, done := r.inst.start(ctx, "Exists")
	defer func() { done(err) }()

	return exists[models.Post](ctx, r.db, id)
}

func (r *postRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, done := r.inst.start(ctx, "Delete")
	defer func() { done(err) }()

	if err = deleteByID[models.Post](ctx, r.db, id); err == nil {
		r.inst.log.LogDelete(ctx, map[string]any{"id": id})
	}
	return err
}

// Find lists posts whose topic contains topicLike (case-insensitive), newest first.
func (r *postRepository) Find(ctx context.Context, topicLike string, pageNum, perPage int) (page *models.Page[models.Post], err error) {
	ctx, done := r.inst.start(ctx, "Find")
	defer func() { done(err) }()

	query := r.db.Model(&models.Post{})
	if topicLike != "" {
		query = query.Where("LOWER(topic) LIKE LOWER(?)", "%"+topicLike+"%")
	}
	query = query.Order("created_at DESC").Order("updated_at DESC")

	return PaginateWithOffset[models.Post](ctx, query, pageNum, perPage, r.opts.offset)
}
