// Package wordlist provides word list filtering helpers.
package wordlist

import "unicode/utf8"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Filter keeps the words accepted by every filter.
func Filter(words []string, filters ...FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		keep := true
		for _, f := range filters {
			if !f(word) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, word)
		}
	}
	return out
}

// MaxRunes keeps words no longer than n characters.
func MaxRunes(n int) FilterFunc {
	return func(word string) bool {
		return utf8.RuneCountInString(word) <= n
	}
}

// PrintableASCII keeps non-empty words made of printable ASCII without spaces.
func PrintableASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch <= ' ' || ch > '~' {
			return false
		}
	}
	return true
}
