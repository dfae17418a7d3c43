// Package strings provides string helpers shared by search and configuration.
package strings

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s decomposed (NFD), stripped of combining marks, and
// lowercased, so "Jibóia" and "JIBOIA" both fold to "jiboia".
//
// A fresh transformer is built per call; transform.Chain is not safe for
// concurrent reuse.
func Fold(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// SplitList splits a comma-separated list, trimming each element and dropping
// empties and duplicates. Order is preserved.
//
//	SplitList(" a, b,,a ") // []string{"a", "b"}
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}
