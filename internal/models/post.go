// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAuthorName is stored when a post is created without an author.
const DefaultAuthorName = "Anonymous"

// Post is a blog entry. Content is markdown; rendering happens elsewhere.
type Post struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt"`
	Published  bool      `json:"published"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostWithCategories is a post annotated with the categories it is linked to.
type PostWithCategories struct {
	Post
	Categories []CategorySummary `json:"categories"`
}

// ListPostsFilter narrows posts.list. Nil fields don't filter.
type ListPostsFilter struct {
	Published  *bool      `json:"published,omitempty"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
}

// CreatePostInput holds the fields accepted by post creation. An omitted
// AuthorName becomes DefaultAuthorName; an explicit empty name is kept.
type CreatePostInput struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Content     string      `json:"content"`
	Excerpt     string      `json:"excerpt"`
	Published   bool        `json:"published"`
	AuthorName  *string     `json:"authorName,omitempty"`
	CategoryIDs []uuid.UUID `json:"categoryIds,omitempty"`
}

// UpdatePostInput is a partial update. Nil fields are left unchanged.
// A non-nil CategoryIDs replaces every link of the post, so a pointer to an
// empty slice detaches the post from all categories.
type UpdatePostInput struct {
	ID          uuid.UUID    `json:"id"`
	Title       *string      `json:"title,omitempty"`
	Slug        *string      `json:"slug,omitempty"`
	Content     *string      `json:"content,omitempty"`
	Excerpt     *string      `json:"excerpt,omitempty"`
	Published   *bool        `json:"published,omitempty"`
	AuthorName  *string      `json:"authorName,omitempty"`
	CategoryIDs *[]uuid.UUID `json:"categoryIds,omitempty"`
}
