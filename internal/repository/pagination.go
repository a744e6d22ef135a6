package repository

import (
	"context"

	"simpleforum/internal/models"
	"simpleforum/internal/observability"

	"gorm.io/gorm"
)

// OffsetFunc maps a 1-based page number and page size to a row offset.
type OffsetFunc func(pageNum, perPage int) int

// PageOffset skips the rows of all previous pages.
func PageOffset(pageNum, perPage int) int {
	return (pageNum - 1) * perPage
}

// LegacyPageOffset skips pageNum rows, regardless of page size.
func LegacyPageOffset(pageNum, _ int) int {
	return pageNum
}

// Paginate runs query for one page of T and counts every row the query matches.
func Paginate[T any](ctx context.Context, query *gorm.DB, pageNum, perPage int) (*models.Page[T], error) {
	return PaginateWithOffset[T](ctx, query, pageNum, perPage, PageOffset)
}

// PaginateWithOffset is Paginate with a custom offset policy. Page bounds are
// not validated; zero or negative values are handed to the database as is.
func PaginateWithOffset[T any](ctx context.Context, query *gorm.DB, pageNum, perPage int, offset OffsetFunc) (*models.Page[T], error) {
	base := query.WithContext(ctx)

	// Counting over a subquery keeps ORDER BY legal on PostgreSQL.
	var total int64
	if err := base.Session(&gorm.Session{NewDB: true}).Table("(?) AS query", base).Count(&total).Error; err != nil {
		return nil, err
	}

	items := []T{}
	tx := base.Offset(offset(pageNum, perPage)).Limit(perPage).Find(&items)
	if tx.Error != nil {
		return nil, tx.Error
	}
	observability.PageItems.WithLabelValues(tx.Statement.Table).Observe(float64(len(items)))

	return &models.Page[T]{
		Items:   items,
		PageNum: pageNum,
		PerPage: perPage,
		Total:   total,
	}, nil
}
