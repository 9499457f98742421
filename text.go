package docsearch

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// MinTokenLength is the shortest token kept by Tokenize.
const MinTokenLength = 2

// PreviewLength is the rune length of a record's content preview.
const PreviewLength = 150

// Tokenize lowercases text, replaces every character outside [a-z0-9] and
// whitespace with a space, splits on whitespace runs and drops tokens
// shorter than MinTokenLength. The same rule is used to build the inverted
// index and to tokenize queries.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Preview truncates s to n runes and appends an ellipsis when anything was cut.
func Preview(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return strings.TrimSpace(Truncate(s, n)) + "..."
}

// HashID returns the first 12 hex characters of the xxHash of s.
func HashID(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))[:12]
}
