package repository

import (
	"context"
	"fmt"
	"slices"

	"simpleforum/internal/database"
	"simpleforum/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) (*models.Comment, error)
	Update(ctx context.Context, id uint, fields models.Fields) (*models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	ChildIDs(ctx context.Context, id uint) ([]uint, error)
	ListByPostWithChildren(ctx context.Context, postID uint) ([]models.CommentWithChildren, error)
}

type commentRepository struct {
	db   *gorm.DB
	inst instrument
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, inst: newInstrument(db, "comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment models.Comment) (out *models.Comment, err error) {
	ctx, done := r.inst.start(ctx, "Create")
	defer func() { done(err) }()

	row := models.Comment{PostID: comment.PostID, ParentID: comment.ParentID, Text: comment.Text}
	if err = r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, err
	}
	r.inst.log.LogCreate(ctx, map[string]any{"id": row.ID, "post_id": row.PostID})
	return getByID[models.Comment](ctx, r.db, row.ID)
}

func (r *commentRepository) Update(ctx context.Context, id uint, fields models.Fields) (out *models.Comment, err error) {
	ctx, done := r.inst.start(ctx, "Update")
	defer func() { done(err) }()

	out, err = updateByID[models.Comment](ctx, r.db, id, fields)
	if err == nil {
		r.inst.log.LogUpdate(ctx, map[string]any{"id": id, "fields": len(fields)})
	}
	return out, err
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (out *models.Comment, err error) {
	ctx, done := r.inst.start(ctx, "GetByID")
	defer func() { done(err) }()

	return getByID[models.Comment](ctx, r.db, id)
}

func (r *commentRepository) Exists(ctx context.Context, id uint) (ok bool, err error) {
	ctx, done := r.inst.start(ctx, "Exists")
	defer func() { done(err) }()

	return exists[models.Comment](ctx, r.db, id)
}

// Delete removes the comment; replies go with it through the parent_id cascade.
func (r *commentRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, done := r.inst.start(ctx, "Delete")
	defer func() { done(err) }()

	if err = deleteByID[models.Comment](ctx, r.db, id); err == nil {
		r.inst.log.LogDelete(ctx, map[string]any{"id": id})
	}
	return err
}

// ChildIDs returns the ids of the direct replies to a comment in ascending order.
func (r *commentRepository) ChildIDs(ctx context.Context, id uint) (ids []uint, err error) {
	ctx, done := r.inst.start(ctx, "ChildIDs")
	defer func() { done(err) }()

	ids = []uint{}
	err = r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_id = ?", id).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// ListByPostWithChildren returns every comment of a post with the ids of its
// direct replies. The post id is not validated; an unknown post yields no rows.
func (r *commentRepository) ListByPostWithChildren(ctx context.Context, postID uint) (out []models.CommentWithChildren, err error) {
	ctx, done := r.inst.start(ctx, "ListByPostWithChildren")
	defer func() { done(err) }()

	rows, err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.parent_id, comments.text, " +
			"comments.created_at, comments.updated_at, " + childrenAggregate(r.db) + " AS children").
		Joins("LEFT JOIN comments AS children ON comments.id = children.parent_id").
		Where("comments.post_id = ?", postID).
		Group("comments.id").
		Order("comments.id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out = []models.CommentWithChildren{}
	for rows.Next() {
		var (
			c        models.Comment
			children pq.Int64Array
		)
		if err = rows.Scan(&c.ID, &c.PostID, &c.ParentID, &c.Text, &c.CreatedAt, &c.UpdatedAt, &children); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		out = append(out, models.CommentWithChildren{Comment: c, Children: childIDs(children)})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// childrenAggregate collects child ids as an array literal with NULLs removed.
// SQLite has no arrays, so the literal is assembled from group_concat.
func childrenAggregate(db *gorm.DB) string {
	if db.Dialector.Name() == database.DialectSQLite {
		return "'{' || COALESCE(group_concat(children.id), '') || '}'"
	}
	return "array_remove(array_agg(children.id), NULL)"
}

func childIDs(raw pq.Int64Array) []uint {
	ids := make([]uint, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, uint(id))
	}
	slices.Sort(ids)
	return ids
}
