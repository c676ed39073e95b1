package faq

import (
	"strings"
	"unicode"
)

// normalizeQuestion folds a question into the key used for trending counts:
// lowercase, punctuation treated as a separator, single spaces between words.
func normalizeQuestion(q string) string {
	words := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}
