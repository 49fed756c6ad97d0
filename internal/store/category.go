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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db Provider
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db Provider) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// GetBySlug retrieves a category by slug.
func (s *CategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getOne(ctx, "slug", slug)
}

// GetByID retrieves a category by ID.
func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.getOne(ctx, "id", id)
}

func (s *CategoryStore) getOne(ctx context.Context, column string, value any) (*models.Category, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE `+column+` = $1 LIMIT 1`, value)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Missing("category")
	}
	if err != nil {
		return nil, fmt.Errorf("find category by %s: %w", column, err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, updated_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING `+categoryColumns,
		in.Name, in.Slug, in.Description,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, classify("create category", err)
	}
	return c, nil
}

// Update applies a partial update to an existing category.
func (s *CategoryStore) Update(ctx context.Context, in models.UpdateCategoryInput) (*models.Category, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var set setClause
	if in.Name != nil {
		set.add("name", *in.Name)
	}
	if in.Slug != nil {
		set.add("slug", *in.Slug)
	}
	if in.Description != nil {
		set.add("description", *in.Description)
	}
	set.columns = append(set.columns, "updated_at = NOW()")
	set.args = append(set.args, in.ID)

	row := db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(set.columns, ", "), len(set.args), categoryColumns),
		set.args...,
	)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Missing("category")
	}
	if err != nil {
		return nil, classify("update category", err)
	}
	return c, nil
}

// Delete removes a category by ID. Its post links cascade; the posts stay.
// Deleting a missing category is not an error.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := s.db.DB(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
