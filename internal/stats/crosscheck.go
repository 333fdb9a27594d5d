package stats

import (
	"github.com/nbutton23/zxcvbn-go"

	"github.com/verte-zerg/passcand/internal/model"
)

// ZxcvbnScore returns the zxcvbn 0-4 score of a password. userInputs are
// treated as known personal words, which lowers the score of candidates built from them.
func ZxcvbnScore(password string, userInputs []string) int {
	return zxcvbn.PasswordStrength(password, userInputs).Score
}

// Crosscheck scores every candidate in the result with zxcvbn, keyed by password.
// It never changes the category a candidate is stored in.
func Crosscheck(res model.Result, userInputs []string) map[string]int {
	scores := make(map[string]int, res.Total())
	for _, cat := range model.Categories {
		for _, c := range res.Get(cat) {
			if _, ok := scores[c.Password]; ok {
				continue
			}
			scores[c.Password] = ZxcvbnScore(c.Password, userInputs)
		}
	}
	return scores
}
