// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category is a password strength bucket, ordered from weakest to strongest.
type Category int

// Strength categories.
const (
	Weak Category = iota
	Medium
	Strong
	VeryStrong
)

// NumCategories is the number of strength categories.
const NumCategories = 4

// Categories lists every category from weakest to strongest.
var Categories = [NumCategories]Category{Weak, Medium, Strong, VeryStrong}

// DisplayOrder lists categories strongest first, the order used for output.
var DisplayOrder = [NumCategories]Category{VeryStrong, Strong, Medium, Weak}

var categoryNames = [NumCategories]string{"Weak", "Medium", "Strong", "Very Strong"}

// String returns the human-readable category name.
func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory parses a category name. Matching ignores case, spaces, dashes and underscores.
func ParseCategory(s string) (Category, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Categories {
		if strings.ReplaceAll(strings.ToLower(c.String()), " ", "") == norm {
			return c, nil
		}
	}
	return Weak, fmt.Errorf("unknown category %q", s)
}

// Candidate is a generated password and its entropy estimate in bits.
type Candidate struct {
	Password string
	Entropy  float64
}

// Result holds the candidates of one generation run, bucketed by category.
type Result struct {
	Buckets [NumCategories][]Candidate
	// Partial is set when the fallback gave up before filling Unfilled.
	Partial  bool
	Unfilled []Category
}

// Get returns the candidates stored for a category.
func (r *Result) Get(c Category) []Candidate {
	return r.Buckets[c]
}

// Total returns the number of candidates across all categories.
func (r *Result) Total() int {
	total := 0
	for _, b := range r.Buckets {
		total += len(b)
	}
	return total
}

// Present returns the categories that hold at least one candidate, strongest first.
func (r *Result) Present() []Category {
	var out []Category
	for _, c := range DisplayOrder {
		if len(r.Buckets[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Empty reports whether no category holds candidates.
func (r *Result) Empty() bool {
	return r.Total() == 0
}

// Options holds the personal inputs and generation settings for one run.
type Options struct {
	FullName       string
	DOB            string
	FavPlace       string
	FavPerson      string
	ImportantDates []string
	ExtraWords     []string
	MaxParts       int
	PerCategory    int
	Leet           bool
	Symbols        bool
}

// Run is a stored generation run.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Label       string
	MaxParts    int
	PerCategory int
	Leet        bool
	Symbols     bool
	Partial     bool
	Unfilled    []Category
	Counts      [NumCategories]int
}
