// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

// PostStore handles post queries and mutations, including the
// posts_to_categories links that attach posts to categories.
type PostStore struct {
	db Provider
}

// NewPostStore creates a new PostStore using the given database provider.
func NewPostStore(db Provider) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, content, excerpt, published, author_name, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt,
		&p.Published, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns posts ordered by creation date descending, each annotated
// with its categories. A category filter is applied after the main query
// as an intersection with the ids linked to that category.
func (s *PostStore) List(ctx context.Context, filter models.ListPostsFilter) ([]models.PostWithCategories, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	var args []any
	if filter.Published != nil {
		query += ` WHERE published = $1`
		args = append(args, *filter.Published)
	}
	query += ` ORDER BY created_at DESC`

	posts, err := queryPosts(ctx, db, query, args...)
	if err != nil {
		return nil, err
	}

	if filter.CategoryID != nil {
		linked, err := postIDsInCategory(ctx, db, *filter.CategoryID)
		if err != nil {
			return nil, err
		}
		kept := posts[:0]
		for _, p := range posts {
			if _, ok := linked[p.ID]; ok {
				kept = append(kept, p)
			}
		}
		posts = kept
	}

	result := make([]models.PostWithCategories, 0, len(posts))
	for _, p := range posts {
		cats, err := categoriesForPost(ctx, db, p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.PostWithCategories{Post: p, Categories: cats})
	}
	return result, nil
}

// queryPosts runs a post SELECT and drains the result set before returning,
// leaving the connection free for follow-up queries.
func queryPosts(ctx context.Context, q querier, query string, args ...any) ([]models.Post, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// postIDsInCategory returns the set of post ids linked to a category.
func postIDsInCategory(ctx context.Context, q querier, categoryID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT post_id FROM posts_to_categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category links: %w", err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category link: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// categoriesForPost returns the summaries of every category linked to a post.
// The result is never nil.
func categoriesForPost(ctx context.Context, q querier, postID uuid.UUID) ([]models.CategorySummary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug
		FROM posts_to_categories pc
		INNER JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY c.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list post categories: %w", err)
	}
	defer rows.Close()

	items := []models.CategorySummary{}
	for rows.Next() {
		var c models.CategorySummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetBySlug retrieves a post and its categories by slug.
func (s *PostStore) GetBySlug(ctx context.Context, slug string) (*models.PostWithCategories, error) {
	return s.getOne(ctx, "slug", slug)
}

// GetByID retrieves a post and its categories by id.
func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*models.PostWithCategories, error) {
	return s.getOne(ctx, "id", id)
}

// getOne looks a post up by a unique column. column is never caller input.
func (s *PostStore) getOne(ctx context.Context, column string, value any) (*models.PostWithCategories, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE `+column+` = $1 LIMIT 1`, value)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Missing("post")
	}
	if err != nil {
		return nil, fmt.Errorf("find post by %s: %w", column, err)
	}

	cats, err := categoriesForPost(ctx, db, p.ID)
	if err != nil {
		return nil, err
	}
	return &models.PostWithCategories{Post: *p, Categories: cats}, nil
}

// Create inserts a post and links it to the given categories in one
// transaction. The returned post carries no category annotation.
func (s *PostStore) Create(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	author := models.DefaultAuthorName
	if in.AuthorName != nil {
		author = *in.AuthorName
	}

	var created *models.Post
	err = withTx(ctx, db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO posts (title, slug, content, excerpt, published, author_name, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING `+postColumns,
			in.Title, in.Slug, in.Content, in.Excerpt, in.Published, author,
		)
		p, err := scanPost(row)
		if err != nil {
			return classify("create post", err)
		}
		created = p
		return insertLinks(ctx, tx, p.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. When CategoryIDs is set, every existing
// link is removed and the new set inserted, inside the same transaction.
func (s *PostStore) Update(ctx context.Context, in models.UpdatePostInput) (*models.Post, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var set setClause
	if in.Title != nil {
		set.add("title", *in.Title)
	}
	if in.Slug != nil {
		set.add("slug", *in.Slug)
	}
	if in.Content != nil {
		set.add("content", *in.Content)
	}
	if in.Excerpt != nil {
		set.add("excerpt", *in.Excerpt)
	}
	if in.Published != nil {
		set.add("published", *in.Published)
	}
	if in.AuthorName != nil {
		set.add("author_name", *in.AuthorName)
	}
	set.columns = append(set.columns, "updated_at = NOW()")
	set.args = append(set.args, in.ID)

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set.columns, ", "), len(set.args), postColumns)

	var updated *models.Post
	err = withTx(ctx, db, func(tx *sql.Tx) error {
		p, err := scanPost(tx.QueryRowContext(ctx, query, set.args...))
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Missing("post")
		}
		if err != nil {
			return classify("update post", err)
		}
		updated = p

		if in.CategoryIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM posts_to_categories WHERE post_id = $1`, in.ID); err != nil {
			return fmt.Errorf("clear post categories: %w", err)
		}
		return insertLinks(ctx, tx, in.ID, *in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// insertLinks attaches a post to each category id.
func insertLinks(ctx context.Context, q querier, postID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, categoryID := range categoryIDs {
		_, err := q.ExecContext(ctx,
			`INSERT INTO posts_to_categories (post_id, category_id) VALUES ($1, $2)`,
			postID, categoryID,
		)
		if err != nil {
			return classify("link post category", err)
		}
	}
	return nil
}

// Delete removes a post by ID. Links are removed by ON DELETE CASCADE.
// Deleting a missing post is not an error.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := s.db.DB(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
