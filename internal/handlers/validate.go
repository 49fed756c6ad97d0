package handlers

import (
	"strings"
	"unicode/utf8"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// Validation limits for post and category fields.
const (
	maxTitleLen        = 300
	maxSlugLen         = 300
	maxContentLen      = 100_000
	maxExcerptLen      = 1_000
	maxAuthorLen       = 200
	maxCategoryNameLen = 200
	maxDescriptionLen  = 1_000
)

// requireText checks a mandatory text field.
func requireText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Invalid(field + " is required")
	}
	return limitText(field, value, maxLen)
}

// limitText checks an optional text field.
func limitText(field, value string, maxLen int) error {
	if utf8.RuneCountInString(value) > maxLen {
		return apperr.Invalid(field + " is too long")
	}
	return nil
}

// checkSlug checks a mandatory slug for presence and canonical form.
// Uniqueness is left to the database.
func checkSlug(value string) error {
	if err := requireText("slug", value, maxSlugLen); err != nil {
		return err
	}
	if !slug.Valid(value) {
		return apperr.Invalid("slug must be lowercase letters and digits joined by single hyphens")
	}
	return nil
}

// validateCreatePost checks the post creation input and returns the first error found.
func validateCreatePost(in *models.CreatePostInput) error {
	if err := requireText("title", in.Title, maxTitleLen); err != nil {
		return err
	}
	if err := checkSlug(in.Slug); err != nil {
		return err
	}
	if err := requireText("content", in.Content, maxContentLen); err != nil {
		return err
	}
	if err := limitText("excerpt", in.Excerpt, maxExcerptLen); err != nil {
		return err
	}
	if in.AuthorName != nil {
		return limitText("authorName", *in.AuthorName, maxAuthorLen)
	}
	return nil
}

// validateUpdatePost checks only the fields present in a partial update.
func validateUpdatePost(in *models.UpdatePostInput) error {
	if in.Title != nil {
		if err := requireText("title", *in.Title, maxTitleLen); err != nil {
			return err
		}
	}
	if in.Slug != nil {
		if err := checkSlug(*in.Slug); err != nil {
			return err
		}
	}
	if in.Content != nil {
		if err := requireText("content", *in.Content, maxContentLen); err != nil {
			return err
		}
	}
	if in.Excerpt != nil {
		if err := limitText("excerpt", *in.Excerpt, maxExcerptLen); err != nil {
			return err
		}
	}
	if in.AuthorName != nil {
		if err := limitText("authorName", *in.AuthorName, maxAuthorLen); err != nil {
			return err
		}
	}
	return nil
}

// validateCreateCategory checks the category creation input.
func validateCreateCategory(in *models.CreateCategoryInput) error {
	if err := requireText("name", in.Name, maxCategoryNameLen); err != nil {
		return err
	}
	if err := checkSlug(in.Slug); err != nil {
		return err
	}
	return limitText("description", in.Description, maxDescriptionLen)
}

// validateUpdateCategory checks only the fields present in a partial update.
func validateUpdateCategory(in *models.UpdateCategoryInput) error {
	if in.Name != nil {
		if err := requireText("name", *in.Name, maxCategoryNameLen); err != nil {
			return err
		}
	}
	if in.Slug != nil {
		if err := checkSlug(*in.Slug); err != nil {
			return err
		}
	}
	if in.Description != nil {
		return limitText("description", *in.Description, maxDescriptionLen)
	}
	return nil
}
