// store_test.go provides shared helpers for store tests: a go-sqlmock backed
// provider for unit tests and a real PostgreSQL helper for integration tests,
// which are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/apperr"
	"inkwell/internal/database"
	"inkwell/internal/models"
)

var (
	postCols     = []string{"id", "title", "slug", "content", "excerpt", "published", "author_name", "created_at", "updated_at"}
	categoryCols = []string{"id", "name", "slug", "description", "created_at", "updated_at"}
	summaryCols  = []string{"id", "name", "slug"}
	fixedTime    = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

// mockDB returns a provider backed by go-sqlmock. Unmet expectations fail
// the test at cleanup.
func mockDB(t *testing.T) (Provider, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return database.Static(db), mock
}

// postRow appends a post row with fixed timestamps.
func postRow(rows *sqlmock.Rows, id uuid.UUID, title, slug string, published bool) *sqlmock.Rows {
	return rows.AddRow(id.String(), title, slug, "content", "", published, "Anonymous", fixedTime, fixedTime)
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func strPtr(s string) *string { return &s }

func hasCategory(cats []models.CategorySummary, id uuid.UUID) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apperr.Kind
		wantMsg  string
	}{
		{"duplicate post slug", pgError("23505", "posts_slug_key"), apperr.Constraint, "a post with this slug already exists"},
		{"missing category", pgError("23503", "posts_to_categories_category_id_fkey"), apperr.Constraint, "category does not exist"},
		{"unknown constraint", pgError("23505", "other_key"), apperr.Constraint, "constraint violation on other_key"},
		{"other sqlstate", pgError("42P01", ""), apperr.Internal, "internal error"},
		{"plain error", errors.New("broken pipe"), apperr.Internal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("op", tt.err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperr.MessageOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStoresWithoutDatabase(t *testing.T) {
	h := database.NewHandle("", database.DefaultPoolOptions())
	posts := NewPostStore(h)
	categories := NewCategoryStore(h)
	ctx := t.Context()

	_, err := posts.List(ctx, models.ListPostsFilter{})
	assert.ErrorIs(t, err, database.ErrNotConfigured)

	_, err = categories.List(ctx)
	assert.ErrorIs(t, err, database.ErrNotConfigured)

	err = posts.Delete(ctx, uuid.New())
	assert.Equal(t, apperr.Configuration, apperr.KindOf(err))
}

// --- integration helpers ---

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueSlug returns a slug that won't collide with other test runs.
func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// cleanPosts removes test posts by slug. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM posts WHERE slug = $1", slug)
	}
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}
