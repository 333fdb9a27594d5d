package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/passcand/internal/model"
)

var denylist = map[string]struct{}{
	"password": {},
	"123456":   {},
	"qwerty":   {},
}

// Classify maps a password and its entropy estimate to a strength category.
// The first matching rule wins.
func Classify(password string, entropy float64) model.Category {
	length := utf8.RuneCountInString(password)
	if entropy < 30 || length < 6 || isAll(password, unicode.IsDigit) || isAll(password, unicode.IsLetter) {
		return model.Weak
	}
	if _, ok := denylist[strings.ToLower(password)]; ok {
		return model.Weak
	}

	classes := charClasses(password)
	switch {
	case entropy >= 60 && length >= 12 && classes >= 3:
		return model.VeryStrong
	case entropy >= 45 && length >= 10 && classes >= 2:
		return model.Strong
	case entropy >= 35 && length >= 8:
		return model.Medium
	default:
		return model.Weak
	}
}

func isAll(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// charClasses counts which of upper, lower, digit and symbol appear in s.
func charClasses(s string) int {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			symbol = true
		}
	}
	n := 0
	for _, b := range []bool{upper, lower, digit, symbol} {
		if b {
			n++
		}
	}
	return n
}

func validLength(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= MinLength && n <= MaxLength
}
