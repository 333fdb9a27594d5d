package generator

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/passcand/internal/model"
)

func johnSmith() model.Options {
	return model.Options{
		FullName:    "John Smith",
		DOB:         "1990-01-23",
		MaxParts:    2,
		PerCategory: 5,
		Leet:        true,
		Symbols:     true,
	}
}

func assertResultInvariants(t *testing.T, res model.Result, quota int) {
	t.Helper()
	for _, cat := range model.Categories {
		list := res.Get(cat)
		if len(list) > quota {
			t.Fatalf("%s holds %d candidates, quota %d", cat, len(list), quota)
		}
		for i, c := range list {
			if got := Classify(c.Password, c.Entropy); got != cat {
				t.Fatalf("%q stored in %s but classifies as %s", c.Password, cat, got)
			}
			if n := len([]rune(c.Password)); n < MinLength || n > MaxLength {
				t.Fatalf("%q has length %d", c.Password, n)
			}
			if i > 0 && list[i-1].Entropy < c.Entropy {
				t.Fatalf("%s not sorted by entropy at %d: %v", cat, i, list)
			}
		}
	}
}

func TestGenerateJohnSmith(t *testing.T) {
	res := NewWithSeed(1).Generate(johnSmith())
	assertResultInvariants(t, res, 5)
	if len(res.Get(model.Weak)) == 0 {
		t.Fatalf("expected weak candidates")
	}
	if len(res.Get(model.VeryStrong)) == 0 {
		t.Fatalf("expected very strong candidates")
	}
}

func TestGenerateRespectsLargerQuota(t *testing.T) {
	opts := model.Options{
		FullName:       "Maria de la Cruz",
		DOB:            "23/04/1985",
		FavPlace:       "Lisbon",
		FavPerson:      "Rex",
		ImportantDates: []string{"2010-06-12", "0712"},
		MaxParts:       3,
		PerCategory:    40,
		Leet:           true,
		Symbols:        true,
	}
	res := NewWithSeed(7).Generate(opts)
	assertResultInvariants(t, res, 40)
	if res.Total() == 0 {
		t.Fatalf("expected candidates")
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	res := NewWithSeed(1).Generate(model.Options{MaxParts: 3, PerCategory: 10, Leet: true, Symbols: true})
	if !res.Empty() {
		t.Fatalf("expected empty result, got %d candidates", res.Total())
	}
	if len(res.Present()) != 0 {
		t.Fatalf("expected no categories, got %v", res.Present())
	}
	if res.Partial {
		t.Fatalf("empty result must not be partial")
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := NewWithSeed(42).Generate(johnSmith())
	b := NewWithSeed(42).Generate(johnSmith())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results for the same seed")
	}
}

func TestGeneratePartialWhenFallbackCannotFill(t *testing.T) {
	res := NewWithSeed(3).Generate(model.Options{FullName: "x", MaxParts: 2, PerCategory: 5})
	assertResultInvariants(t, res, 5)
	if !res.Partial {
		t.Fatalf("expected partial result")
	}
	want := []model.Category{model.Strong, model.VeryStrong}
	if !reflect.DeepEqual(res.Unfilled, want) {
		t.Fatalf("unfilled = %v, want %v", res.Unfilled, want)
	}
	if len(res.Get(model.Weak)) != 5 {
		t.Fatalf("expected weak to be filled, got %v", res.Get(model.Weak))
	}
}

func TestNormalizeClamps(t *testing.T) {
	got := Normalize(model.Options{MaxParts: 9, PerCategory: 0})
	if got.MaxParts != MaxParts || got.PerCategory != 1 {
		t.Fatalf("unexpected clamp: %+v", got)
	}
	got = Normalize(model.Options{MaxParts: -1, PerCategory: 20})
	if got.MaxParts != MinParts || got.PerCategory != 20 {
		t.Fatalf("unexpected clamp: %+v", got)
	}
}

func TestTokensOrder(t *testing.T) {
	got := Tokens(johnSmith())
	want := []string{"John", "Smith", "JS", "J", "S", "1990", "90", "23011990", "230190", "2301", "0123", "23"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
}
