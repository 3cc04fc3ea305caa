// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

// Package slug derives ASCII identifiers from arbitrary Unicode strings.
//
// # Usage
//
// Verso uses slugs as synthesized usernames for artists discovered via the
// external metadata import (e.g., "Beyoncé" → "beyonce"). This package
// handles normalization, accent removal, and character sanitization.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiUnderscore collapses multiple consecutive underscores into one.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// Username converts an arbitrary display name into a lowercase ASCII
// username.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces non-alphanumeric characters with underscores.
// 5. Collapses repeated underscores and trims leading/trailing ones.
//
// An input with no usable characters yields "unknown_artist".
func Username(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Replace whitespace and special chars with underscores
	result = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, result)

	// 4. Clean up repeated separators
	result = multiUnderscore.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")

	if result == "" {
		return "unknown_artist"
	}
	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
