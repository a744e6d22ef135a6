// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"simpleforum/internal/models"
	"simpleforum/internal/observability"

	"gorm.io/gorm"
)

// Option customises a repository at construction time.
type Option func(*options)

type options struct {
	offset OffsetFunc
}

// WithOffset overrides how list endpoints turn a page number into a row offset.
func WithOffset(fn OffsetFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.offset = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{offset: PageOffset}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// instrument bundles tracing, latency metrics and logging for one table.
type instrument struct {
	table  string
	tracer *observability.TraceLayer
	log    *observability.RepoLogger
}

func newInstrument(db *gorm.DB, table string) instrument {
	return instrument{
		table:  table,
		tracer: observability.GetTraceLayer(db.Dialector.Name()),
		log:    observability.NewRepoLogger(table),
	}
}

// start opens a span for method; the returned func closes it with the method's error.
func (i instrument) start(ctx context.Context, method string) (context.Context, func(error)) {
	ctx, span := i.tracer.TraceRepositoryMethod(ctx, method, i.table)
	stop := observability.TrackQuery(method, i.table)
	return ctx, func(err error) {
		stop()
		if err != nil {
			i.log.LogError(ctx, err, method)
		}
		observability.EndSpan(span, err)
	}
}

// getByID loads one row of T; absence is reported as (nil, nil).
func getByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	err := db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func exists[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// deleteByID removes the row unconditionally; a missing id is not an error.
func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(new(T), id).Error
}

// updateByID writes only the given columns and reloads the row.
func updateByID[T any](ctx context.Context, db *gorm.DB, id uint, fields models.Fields) (*T, error) {
	if len(fields) > 0 {
		err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(map[string]any(fields)).Error
		if err != nil {
			return nil, err
		}
	}
	return getByID[T](ctx, db, id)
}
