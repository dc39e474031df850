package util

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	hashtagRe  = regexp.MustCompile(`#(\w+)`)
	wordRe     = regexp.MustCompile(`\w+`)
)

// bioStopwords are dropped from bio keyword sets.
var bioStopwords = map[string]struct{}{
	"i": {}, "a": {}, "the": {}, "and": {}, "or": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"of": {}, "with": {}, "my": {}, "your": {}, "our": {}, "is": {}, "be": {}, "are": {}, "by": {},
}

// NormalizeWhitespace trims and collapses whitespace to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// ExtractHashtags returns lowercased #tags in order of appearance, duplicates included.
func ExtractHashtags(text string) []string {
	m := hashtagRe.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(m))
	for _, g := range m {
		out = append(out, strings.ToLower(g[1]))
	}
	return out
}

// Dedupe removes repeated strings keeping first-seen order.
func Dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// BioKeywords returns the set of lowercase words longer than two characters that are not stopwords.
func BioKeywords(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(text, -1) {
		lw := strings.ToLower(w)
		if len([]rune(lw)) <= 2 {
			continue
		}
		if _, stop := bioStopwords[lw]; stop {
			continue
		}
		out[lw] = struct{}{}
	}
	return out
}

// Truncate cuts s to n runes and appends suffix when something was cut.
func Truncate(s string, n int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + suffix
}

// FormatNumber renders large counts compactly: 1500000 -> 1.5M, 15300 -> 15K.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
