package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/passcand/internal/model"
)

// Tokenize splits free text on runs of non-word characters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

// NameInitials returns the initials of the name parts followed by each part's first character.
func NameInitials(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	var initials strings.Builder
	firsts := make([]string, 0, len(parts))
	for _, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		initials.WriteRune(r)
		firsts = append(firsts, string(r))
	}
	if initials.Len() == 0 {
		return nil
	}
	return append([]string{initials.String()}, firsts...)
}

// isWordRune reports whether r is a letter, any number (including
// superscripts and numerals like Ⅻ) or an underscore. Combining marks are
// separators.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// collectTokens gathers tokens in first-seen order: text fields, initials,
// extra words, then date tokens. The date tokens are also returned on their own.
func collectTokens(opts model.Options) (tokens, dates []string) {
	set := newOrderedSet()
	for _, field := range []string{opts.FullName, opts.FavPlace, opts.FavPerson} {
		set.add(Tokenize(field)...)
	}
	set.add(NameInitials(Tokenize(opts.FullName))...)
	for _, w := range opts.ExtraWords {
		set.add(Tokenize(w)...)
	}

	dateSet := newOrderedSet()
	dateSet.add(DateVariants(opts.DOB)...)
	for _, d := range opts.ImportantDates {
		dateSet.add(DateVariants(d)...)
	}
	set.add(dateSet.list()...)
	return set.list(), dateSet.list()
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) list() []string {
	return s.items
}
