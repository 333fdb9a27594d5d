package generator

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/passcand/internal/model"
)

// Attempt caps for the fallback loops. A loop gives up after
// max(quota*fallbackAttemptsPerSlot, minFallbackAttempts) tries.
const (
	fallbackAttemptsPerSlot = 100
	minFallbackAttempts     = 1000
)

var fallbackSymbols = []string{"!", "@", "#"}

// fill tops up Weak with token+number candidates and Strong/VeryStrong with
// Token+token+number+symbol candidates. It returns the targeted categories
// that are still below quota when the attempt cap is reached.
func (g *Generator) fill(b *buckets, tokens []string) []model.Category {
	if len(tokens) > 0 {
		limit := max(b.quota*fallbackAttemptsPerSlot, minFallbackAttempts)

		for attempt := 0; attempt < limit && !b.full(model.Weak); attempt++ {
			pwd := g.pick(tokens) + strconv.Itoa(g.rnd.Intn(999)+1)
			entropy := EstimateEntropy(pwd)
			if Classify(pwd, entropy) == model.Weak {
				b.offer(pwd, entropy, model.Weak)
			}
		}

		for attempt := 0; attempt < limit && !(b.full(model.Strong) && b.full(model.VeryStrong)); attempt++ {
			pwd := Capitalize(g.pick(tokens)) +
				strings.ToLower(g.pick(tokens)) +
				strconv.Itoa(g.rnd.Intn(990)+10) +
				fallbackSymbols[g.rnd.Intn(len(fallbackSymbols))]
			entropy := EstimateEntropy(pwd)
			if cat := Classify(pwd, entropy); cat == model.Strong || cat == model.VeryStrong {
				b.offer(pwd, entropy, cat)
			}
		}
	}

	var unfilled []model.Category
	for _, c := range []model.Category{model.Weak, model.Strong, model.VeryStrong} {
		if !b.full(c) {
			unfilled = append(unfilled, c)
		}
	}
	return unfilled
}

func (g *Generator) pick(tokens []string) string {
	return tokens[g.rnd.Intn(len(tokens))]
}
