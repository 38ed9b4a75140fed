package ai

import (
	"testing"
)

func TestRecipeComputeHash(t *testing.T) {
	recipe := Recipe{
		Title: "Pancakes",
		Ingredients: []Ingredient{
			{Name: "flour", Quantity: 250, Unit: "g"},
			{Name: "milk", Quantity: 300, Unit: "ml"},
		},
		Steps:       []string{"Whisk", "Fry"},
		ScaleFactor: 1.0,
	}

	hash1 := recipe.ComputeHash()
	if hash1 == "" {
		t.Fatal("hash should not be empty")
	}

	// Hash should be consistent
	hash2 := recipe.ComputeHash()
	if hash1 != hash2 {
		t.Fatalf("hash should be consistent: %s != %s", hash1, hash2)
	}

	// Different recipe should have different hash
	recipe2 := recipe
	recipe2.Title = "Crepes"
	if hash1 == recipe2.ComputeHash() {
		t.Fatal("different recipes should have different hashes")
	}

	// Scaling changes quantities, so it changes the hash
	if hash1 == recipe.Scaled(2).ComputeHash() {
		t.Fatal("scaled recipe should have a different hash")
	}
}

func TestScaledMultipliesQuantities(t *testing.T) {
	base := Recipe{
		Title: "Pancakes",
		Ingredients: []Ingredient{
			{Name: "flour", Quantity: 250, Unit: "g"},
			{Name: "egg", Quantity: 2, Unit: "whole"},
			{Name: "milk", Quantity: 300, Unit: "ml"},
		},
		Steps:       []string{"Whisk", "Fry"},
		ScaleFactor: 1.0,
	}

	for _, k := range []float64{0.5, 1.0, 2.0, 3.0} {
		scaled := base.Scaled(k)
		if scaled.ScaleFactor != k {
			t.Errorf("scale factor = %g, want %g", scaled.ScaleFactor, k)
		}
		for i, ing := range scaled.Ingredients {
			want := base.Ingredients[i].Quantity * k
			if ing.Quantity != want {
				t.Errorf("scale %g: %s quantity = %g, want %g", k, ing.Name, ing.Quantity, want)
			}
		}
	}

	// base is untouched
	if base.Ingredients[0].Quantity != 250 {
		t.Fatalf("Scaled mutated the baseline: %g", base.Ingredients[0].Quantity)
	}
}

func TestScaledRoundsAwkwardFractions(t *testing.T) {
	base := Recipe{Ingredients: []Ingredient{{Name: "butter", Quantity: 33.333, Unit: "g"}}}
	scaled := base.Scaled(0.5)
	if scaled.Ingredients[0].Quantity != 16.67 {
		t.Errorf("got %g, want 16.67", scaled.Ingredients[0].Quantity)
	}
}

func TestIsRaw(t *testing.T) {
	structured := Recipe{Title: "Soup", Ingredients: []Ingredient{{Name: "water", Quantity: 1, Unit: "l"}}}
	if structured.IsRaw() {
		t.Error("structured recipe reported as raw")
	}
	raw := Recipe{RawText: "Just wing it."}
	if !raw.IsRaw() {
		t.Error("raw fallback not reported as raw")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      "{\"a\":1}",
		"```json\n{\"a\":1}\n```":        "{\"a\":1}",
		"```\n{\"a\":1}\n```":            "{\"a\":1}",
		"  \n```json\n{\"a\":1}\n```\n ": "{\"a\":1}",
	}
	for in, want := range cases {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
