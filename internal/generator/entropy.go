package generator

import "math"

// Character pool sizes used by EstimateEntropy.
const (
	lowerPool  = 26
	upperPool  = 26
	digitPool  = 10
	symbolPool = 32
)

// EstimateEntropy approximates password entropy in bits as
// length * log2(pool), rounded to one decimal place. The pool grows with each
// character class present: lowercase, uppercase, digits and everything else.
func EstimateEntropy(password string) float64 {
	var hasLower, hasUpper, hasDigit, hasOther bool
	length := 0
	for _, r := range password {
		length++
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}

	pool := 0
	if hasLower {
		pool += lowerPool
	}
	if hasUpper {
		pool += upperPool
	}
	if hasDigit {
		pool += digitPool
	}
	if hasOther {
		pool += symbolPool
	}
	if pool == 0 {
		return 0
	}
	return math.Round(float64(length)*math.Log2(float64(pool))*10) / 10
}
