// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators matches every run of characters that can't appear in a slug.
	separators = regexp.MustCompile(`[^a-z0-9]+`)
	// canonical matches lowercase ASCII words joined by single hyphens.
	canonical = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate creates a URL-friendly slug from the given string.
// Accented Latin letters are folded to ASCII, everything else that isn't
// a letter or digit becomes a hyphen.
// Example: "Café, World! 2026" → "cafe-world-2026"
func Generate(s string) string {
	result := strings.ToLower(fold(s))
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return canonical.MatchString(s)
}

// fold strips combining marks after canonical decomposition ("é" → "e").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
