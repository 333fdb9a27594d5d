package generator

import "strings"

// DateVariants normalizes a free-form date into digit tokens.
//
// Eight digits are split as year (0:4), month (4:6) and day (6:8) and
// expanded into year, short year, day+month+year, day+month+short year,
// day+month, month+day and day. Any other run of at least four digits is
// returned as-is. Shorter inputs yield nothing.
func DateVariants(raw string) []string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch n := len(digits); {
	case n == 8:
		y, m, d := digits[0:4], digits[4:6], digits[6:8]
		set := newOrderedSet()
		set.add(y, y[2:], d+m+y, d+m+y[2:], d+m, m+d, d)
		return set.list()
	case n >= 4:
		return []string{digits}
	default:
		return nil
	}
}
