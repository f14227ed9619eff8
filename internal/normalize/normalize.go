// Package normalize canonicalizes raw place names into reconciliation join
// keys. The key function must stay pure and deterministic: it is the only
// thing holding multi-source records together.
package normalize

import (
	"regexp"
	"strings"
)

var (
	leadingArticle = regexp.MustCompile(`(?i)^(the|a|an)\s+`)
	categorySuffix = regexp.MustCompile(`(?i)\s+(restaurant|cafe|hotel|lodge|museum|park|gallery)$`)
	nonAlnum       = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// Key normalizes a raw name: trim, drop one leading article, strip
// punctuation, collapse whitespace, lowercase. CSV sources encode missing
// cells as "nan" or "NaN"; those normalize to the empty string.
func Key(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	s = leadingArticle.ReplaceAllString(s, "")
	s = nonAlnum.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// WithoutCategorySuffix drops one trailing category word (restaurant, cafe,
// hotel, ...) from a key. It is not part of the join key, since "zoo
// restaurant" and "zoo" must reconcile as distinct places; search uses it
// for a looser second-pass match.
func WithoutCategorySuffix(key string) string {
	return strings.TrimSpace(categorySuffix.ReplaceAllString(key, ""))
}

// Usable reports whether a key is safe to join on. One- and two-character
// keys collide on near-empty names, so callers drop those rows.
func Usable(key string) bool {
	return len(key) > 2
}
