// Package generator derives password candidates from personal information
// and buckets them by estimated strength.
package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/passcand/internal/model"
)

const (
	// MaxVariantsPerToken caps the variant list kept for each token.
	MaxVariantsPerToken = 8
	// MaxChoicesPerPosition caps the variants tried per token position when building cores.
	MaxChoicesPerPosition = 4
	// MinLength and MaxLength bound the length of stored candidates.
	MinLength = 4
	MaxLength = 64
	// MinParts and MaxParts bound the number of tokens combined into a core.
	MinParts = 1
	MaxParts = 4
)

// budgetFactor scales the per-category quota into the search budget.
const budgetFactor = 4

// Generator produces categorized password candidates.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator whose fallback randomness is reproducible.
func NewWithSeed(seed int64) *Generator {
	return NewWithSource(rand.NewSource(seed))
}

// NewWithSource returns a Generator drawing randomness from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Normalize clamps options to the ranges the engine supports.
func Normalize(opts model.Options) model.Options {
	if opts.MaxParts < MinParts {
		opts.MaxParts = MinParts
	}
	if opts.MaxParts > MaxParts {
		opts.MaxParts = MaxParts
	}
	if opts.PerCategory < 1 {
		opts.PerCategory = 1
	}
	return opts
}

// Generate runs the combination search, tops up unfilled categories with the
// fallback filler and returns every category sorted by entropy, strongest first.
// Inputs that yield no tokens produce an empty result.
func (g *Generator) Generate(opts model.Options) model.Result {
	opts = Normalize(opts)
	tokens, dates := collectTokens(opts)
	if len(tokens) == 0 {
		return model.Result{}
	}

	variants := make(map[string][]string, len(tokens))
	for _, t := range tokens {
		variants[t] = ExpandToken(t, opts.Leet)
	}

	b := newBuckets(opts.PerCategory)
	var unfilled []model.Category
	if !search(b, tokens, variants, dates, opts) {
		unfilled = g.fill(b, tokens)
	}
	return b.finalize(unfilled)
}

// Tokens returns the deduplicated tokens derived from the options, date tokens included.
func Tokens(opts model.Options) []string {
	tokens, _ := collectTokens(opts)
	return tokens
}

type buckets struct {
	quota int
	lists [model.NumCategories][]model.Candidate
	seen  map[string]struct{}
	// processed counts candidates scored by the search, stored or not.
	processed int
}

func newBuckets(quota int) *buckets {
	return &buckets{quota: quota, seen: map[string]struct{}{}}
}

// offer stores the candidate when its category has room and the password is new.
func (b *buckets) offer(password string, entropy float64, cat model.Category) bool {
	if b.full(cat) || !validLength(password) {
		return false
	}
	if _, ok := b.seen[password]; ok {
		return false
	}
	b.seen[password] = struct{}{}
	b.lists[cat] = append(b.lists[cat], model.Candidate{Password: password, Entropy: entropy})
	return true
}

func (b *buckets) full(cat model.Category) bool {
	return len(b.lists[cat]) >= b.quota
}

func (b *buckets) allFull() bool {
	for _, c := range model.Categories {
		if !b.full(c) {
			return false
		}
	}
	return true
}

func (b *buckets) finalize(unfilled []model.Category) model.Result {
	res := model.Result{Unfilled: unfilled, Partial: len(unfilled) > 0}
	for _, c := range model.Categories {
		list := b.lists[c]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Entropy > list[j].Entropy
		})
		if len(list) > b.quota {
			list = list[:b.quota]
		}
		res.Buckets[c] = list
	}
	return res
}
