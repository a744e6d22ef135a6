// Package seed fills the forum database with generated demo data. It is
// intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"simpleforum/internal/middleware"
	"simpleforum/internal/models"
	"simpleforum/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Sections        int
	PostsPerSection int
	CommentsPerPost int
	// ReplyRatio is the share of comments, in [0,1], that answer an earlier
	// comment of the same post instead of the post itself.
	ReplyRatio float64
	// Seed makes the generated content reproducible. Zero picks a random seed.
	Seed int64
}

// DefaultOptions is what cmd/seed uses without flags.
var DefaultOptions = Options{
	Sections:        5,
	PostsPerSection: 20,
	CommentsPerPost: 8,
	ReplyRatio:      0.4,
}

// Result counts the rows Run created.
type Result struct {
	Sections int
	Posts    int
	Comments int
}

// Seeder writes generated entities through the repositories.
type Seeder struct {
	db       *gorm.DB
	sections repository.SectionRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewSeeder creates a seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:       db,
		sections: repository.NewSectionRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
	}
}

// ClearAll removes every section, post and comment.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.Section{}} {
		if err := tx.Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	middleware.Logger.InfoContext(ctx, "Cleared forum data")
	return nil
}

// Run generates sections, their posts and a comment thread for every post.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := newFactory(gofakeit.New(seed))

	var res Result
	for i := 0; i < opts.Sections; i++ {
		section, err := s.sections.Create(ctx, f.section())
		if err != nil {
			return res, fmt.Errorf("creating section: %w", err)
		}
		res.Sections++

		for j := 0; j < opts.PostsPerSection; j++ {
			post, err := s.posts.Create(ctx, f.post(section.ID))
			if err != nil {
				return res, fmt.Errorf("creating post: %w", err)
			}
			res.Posts++

			n, err := s.thread(ctx, f, post.ID, opts.CommentsPerPost, opts.ReplyRatio)
			res.Comments += n
			if err != nil {
				return res, err
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "Seeded forum data",
		slog.Int("sections", res.Sections),
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
		slog.Int64("seed", seed),
	)
	return res, nil
}

// thread creates n comments on postID. Replies always point at a comment
// created earlier in the same thread.
func (s *Seeder) thread(ctx context.Context, f *factory, postID uint, n int, replyRatio float64) (int, error) {
	ids := make([]uint, 0, n)
	for k := 0; k < n; k++ {
		var parentID *uint
		if len(ids) > 0 && f.chance(replyRatio) {
			parent := ids[f.faker.Number(0, len(ids)-1)]
			parentID = &parent
		}

		comment, err := s.comments.Create(ctx, f.comment(postID, parentID))
		if err != nil {
			return len(ids), fmt.Errorf("creating comment: %w", err)
		}
		ids = append(ids, comment.ID)
	}
	return len(ids), nil
}
