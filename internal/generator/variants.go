package generator

import (
	"iter"
	"strings"
	"unicode"
)

// maxLeetPositions bounds the positions for which every substitution subset is enumerated.
const maxLeetPositions = 10

var leetMap = map[rune]rune{
	'a': '4',
	'e': '3',
	'i': '1',
	'o': '0',
	's': '5',
	't': '7',
	'l': '1',
}

// AffixSymbols are the symbols used by SymbolVariants.
var AffixSymbols = []string{"!", "@", "#", "$", "%", "&", "*", "+", "=", "?"}

// Capitalize upper-cases the first character and lower-cases the rest.
func Capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// CaseVariants returns the original, lower, upper and capitalized forms without duplicates.
func CaseVariants(s string) []string {
	set := newOrderedSet()
	set.add(s, strings.ToLower(s), strings.ToUpper(s), Capitalize(s))
	return set.list()
}

// LeetVariants returns the case variants followed by leet substitutions:
// the fully substituted form, every single-position substitution, then
// multi-position subsets ordered by size.
func LeetVariants(s string) []string {
	set := newOrderedSet()
	set.add(CaseVariants(s)...)

	runes := []rune(s)
	var positions []int
	for i, r := range runes {
		if _, ok := leetMap[unicode.ToLower(r)]; ok {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return set.list()
	}
	set.add(substitute(runes, positions))
	for _, p := range positions {
		set.add(substitute(runes, []int{p}))
	}
	if len(positions) <= maxLeetPositions {
		for k := 2; k < len(positions); k++ {
			for subset := range combinations(positions, k) {
				set.add(substitute(runes, subset))
			}
		}
	}
	return set.list()
}

// ExpandToken returns at most MaxVariantsPerToken variants of token in generation order.
func ExpandToken(token string, leet bool) []string {
	var all []string
	if leet {
		all = LeetVariants(token)
	} else {
		all = CaseVariants(token)
	}
	return head(all, MaxVariantsPerToken)
}

// SymbolVariants returns s followed by s+sym, sym+s and sym+s+sym for every affix symbol.
func SymbolVariants(s string) []string {
	set := newOrderedSet()
	set.add(s)
	for _, sym := range AffixSymbols {
		set.add(s+sym, sym+s, sym+s+sym)
	}
	return set.list()
}

func substitute(runes []rune, positions []int) string {
	out := make([]rune, len(runes))
	copy(out, runes)
	for _, p := range positions {
		out[p] = leetMap[unicode.ToLower(out[p])]
	}
	return string(out)
}

// combinations yields every k-subset of items in lexicographic index order.
// The yielded slice is reused between iterations.
func combinations(items []int, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := len(items)
		if k <= 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		out := make([]int, k)
		for {
			for i, j := range idx {
				out[i] = items[j]
			}
			if !yield(out) {
				return
			}
			pos := k - 1
			for pos >= 0 && idx[pos] == n-k+pos {
				pos--
			}
			if pos < 0 {
				return
			}
			idx[pos]++
			for i := pos + 1; i < k; i++ {
				idx[i] = idx[i-1] + 1
			}
		}
	}
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
