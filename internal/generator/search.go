package generator

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/passcand/internal/model"
)

// maxDateAffixes is the number of date tokens appended and prepended to each core.
const maxDateAffixes = 3

var fixedSuffixes = []string{"123", "2024", "!"}

// search fills b from cores built over tokens. It stops when every category
// is full or quota*budgetFactor candidates were processed, and reports
// whether every category is full.
func search(b *buckets, tokens []string, variants map[string][]string, dates []string, opts model.Options) bool {
	budget := opts.PerCategory * budgetFactor
	for core := range cores(tokens, variants, opts.MaxParts) {
		for _, pwd := range derive(core, dates, opts.Symbols) {
			n := utf8.RuneCountInString(pwd)
			if n < MinLength || n > MaxLength {
				continue
			}
			entropy := EstimateEntropy(pwd)
			b.offer(pwd, entropy, Classify(pwd, entropy))
			b.processed++
			if b.allFull() {
				return true
			}
			if b.processed >= budget {
				return false
			}
		}
	}
	return b.allFull()
}

// cores yields the concatenations of every ordered arrangement of up to
// maxParts distinct tokens, taking the first MaxChoicesPerPosition variants
// of each token.
func cores(tokens []string, variants map[string][]string, maxParts int) iter.Seq[string] {
	return func(yield func(string) bool) {
		limit := min(maxParts, len(tokens))
		for r := 1; r <= limit; r++ {
			for arrangement := range permutations(tokens, r) {
				choices := make([][]string, len(arrangement))
				for i, t := range arrangement {
					choices[i] = head(variants[t], MaxChoicesPerPosition)
				}
				for parts := range product(choices) {
					if !yield(strings.Join(parts, "")) {
						return
					}
				}
			}
		}
	}
}

// derive returns the passwords tried for one core, without duplicates.
func derive(core string, dates []string, symbols bool) []string {
	set := newOrderedSet()
	set.add(core, Capitalize(core), strings.ToUpper(core))
	for _, s := range fixedSuffixes {
		set.add(core + s)
	}
	set.add("!"+core, core+"@123")
	if symbols {
		set.add(SymbolVariants(core)...)
	}
	for _, dt := range head(dates, maxDateAffixes) {
		set.add(core+dt, dt+core)
	}
	return set.list()
}

// permutations yields every ordered arrangement of r distinct items in
// lexicographic index order. The yielded slice is reused between iterations.
func permutations(items []string, r int) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if r <= 0 || r > len(items) {
			return
		}
		perm := make([]string, r)
		used := make([]bool, len(items))
		var walk func(pos int) bool
		walk = func(pos int) bool {
			if pos == r {
				return yield(perm)
			}
			for i, item := range items {
				if used[i] {
					continue
				}
				used[i] = true
				perm[pos] = item
				ok := walk(pos + 1)
				used[i] = false
				if !ok {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}

// product yields the cartesian product of choices, rightmost position varying fastest.
// The yielded slice is reused between iterations.
func product(choices [][]string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if len(choices) == 0 {
			return
		}
		for _, c := range choices {
			if len(c) == 0 {
				return
			}
		}
		idx := make([]int, len(choices))
		out := make([]string, len(choices))
		for {
			for i, j := range idx {
				out[i] = choices[i][j]
			}
			if !yield(out) {
				return
			}

			pos := len(idx) - 1
			for pos >= 0 {
				idx[pos]++
				if idx[pos] < len(choices[pos]) {
					break
				}
				idx[pos] = 0
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}
