package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type seedCategory struct {
	name, slug, description string
}

type seedPost struct {
	title, slug, content, excerpt, author string
	category                              string // slug of the linked category
}

var (
	seedCategories = []seedCategory{
		{"Technology", "technology", "Tech-related posts"},
		{"Travel", "travel", "Travel experiences"},
		{"Food", "food", "Food and recipes"},
	}
	seedPosts = []seedPost{
		{
			title:    "Getting Started with Go",
			slug:     "getting-started-with-go",
			content:  "Go is a small language with a large standard library...",
			excerpt:  "Learn the basics of Go",
			author:   "John Doe",
			category: "technology",
		},
		{
			title:    "Exploring Japan",
			slug:     "exploring-japan",
			content:  "Japan is a fascinating country...",
			excerpt:  "A journey through Japan",
			author:   "Jane Smith",
			category: "travel",
		},
	}
)

// Seed populates an empty database with sample categories and published
// posts for development. It is a no-op once any category exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, c := range seedCategories {
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, c.name, c.slug, c.description).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.slug, err)
		}
		categoryIDs[c.slug] = id
	}

	for _, p := range seedPosts {
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO posts (title, slug, content, excerpt, published, author_name)
			VALUES ($1, $2, $3, $4, TRUE, $5)
			RETURNING id
		`, p.title, p.slug, p.content, p.excerpt, p.author).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert post %s: %w", p.slug, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO posts_to_categories (post_id, category_id) VALUES ($1, $2)`,
			id, categoryIDs[p.category],
		)
		if err != nil {
			return fmt.Errorf("seed link post %s: %w", p.slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample content",
		"categories", len(seedCategories),
		"posts", len(seedPosts),
	)
	return nil
}
