// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the post and category procedures on top of
// PostgreSQL. Every store receives its database through a Provider and
// resolves the pool per call, so an unconfigured database only fails the
// procedures that actually run.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/apperr"
)

// Provider yields the shared connection pool. *database.Handle implements it.
type Provider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgreSQL SQLSTATE codes surfaced as constraint violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintMessages maps schema constraint names to caller-facing text.
var constraintMessages = map[string]string{
	"posts_slug_key":                       "a post with this slug already exists",
	"categories_name_key":                  "a category with this name already exists",
	"categories_slug_key":                  "a category with this slug already exists",
	"unique_post_category":                 "post is already linked to this category",
	"posts_to_categories_category_id_fkey": "category does not exist",
	"posts_to_categories_post_id_fkey":     "post does not exist",
}

// classify turns driver errors into labeled failures. Unique and foreign key
// violations become Constraint errors; anything else is wrapped with op.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			msg, ok := constraintMessages[pgErr.ConstraintName]
			if !ok {
				msg = "constraint violation"
				if pgErr.ConstraintName != "" {
					msg += " on " + pgErr.ConstraintName
				}
			}
			return apperr.Wrap(apperr.Constraint, msg, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// setClause accumulates "column = $n" pairs for partial updates.
type setClause struct {
	columns []string
	args    []any
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.columns = append(s.columns, fmt.Sprintf("%s = $%d", column, len(s.args)))
}
