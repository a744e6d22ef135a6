// Command seed fills the forum database with generated demo data.
package main

import (
	"context"
	"flag"
	"log"

	"simpleforum/internal/config"
	"simpleforum/internal/database"
	"simpleforum/internal/seed"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.Sections, "sections", opts.Sections, "Number of sections to create")
	flag.IntVar(&opts.PostsPerSection, "posts", opts.PostsPerSection, "Posts per section")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "Comments per post")
	flag.Float64Var(&opts.ReplyRatio, "replies", opts.ReplyRatio, "Share of comments that reply to another comment")
	flag.Int64Var(&opts.Seed, "seed", 0, "Random seed (0 picks one)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d sections x %d posts x %d comments, clean=%v",
		opts.Sections, opts.PostsPerSection, opts.CommentsPerPost, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(ctx, opts)
	if err != nil {
		log.Fatalf("Seeding failed after %d sections, %d posts, %d comments: %v",
			res.Sections, res.Posts, res.Comments, err)
	}

	log.Printf("Done: %d sections, %d posts, %d comments", res.Sections, res.Posts, res.Comments)
}
