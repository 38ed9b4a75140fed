package ai

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"strconv"

	"github.com/samber/lo"
)

// IngredientList is an ordered list of normalized ingredient names.
type IngredientList []string

// DishSuggestion is one candidate dish, in the order the model returned it.
type DishSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type Recipe struct {
	Title         string              `json:"title"`
	Ingredients   []Ingredient        `json:"ingredients"`
	Steps         []string            `json:"steps"`
	Substitutions map[string][]string `json:"substitutions"`
	PrepTime      string              `json:"prep_time"`
	CookTime      string              `json:"cook_time"`

	// ScaleFactor is applied locally, never by the model. The model always
	// produces the scale-1 baseline.
	ScaleFactor float64 `json:"scale_factor,omitempty" jsonschema:"-"`
	// RawText holds the unparsed response when the model ignored the schema.
	RawText string `json:"raw_text,omitempty" jsonschema:"-"`
}

// IsRaw reports whether this recipe is a free-text fallback rather than a
// structured document.
func (r Recipe) IsRaw() bool {
	return r.RawText != "" && r.Title == "" && len(r.Ingredients) == 0
}

// Scaled returns a copy with every quantity multiplied by factor. Factor
// must be positive; 1.0 returns an identical recipe.
func (r *Recipe) Scaled(factor float64) *Recipe {
	out := *r
	out.ScaleFactor = factor
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ing.Quantity = roundQuantity(ing.Quantity * factor)
		out.Ingredients[i] = ing
	}
	return &out
}

func roundQuantity(q float64) float64 {
	return math.Round(q*100) / 100
}

// ComputeHash calculates the fnv128 hash of the recipe content.
// ScaleFactor affects quantities, so it participates; RawText documents are
// hashed on their text alone.
func (r *Recipe) ComputeHash() string {
	h := fnv.New128a()
	lo.Must(io.WriteString(h, r.Title))
	for _, ing := range r.Ingredients {
		lo.Must(io.WriteString(h, ing.Name))
		lo.Must(io.WriteString(h, strconv.FormatFloat(ing.Quantity, 'g', -1, 64)))
		lo.Must(io.WriteString(h, ing.Unit))
	}
	for _, step := range r.Steps {
		lo.Must(io.WriteString(h, step))
	}
	lo.Must(io.WriteString(h, fmt.Sprintf("%g", r.ScaleFactor)))
	lo.Must(io.WriteString(h, r.RawText))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// Wire shapes the model is asked to fill. Schemas are reflected from these.

type normalizedResponse struct {
	NormalizedIngredients []string `json:"normalized_ingredients" jsonschema:"required"`
}

type suggestionsResponse struct {
	Dishes []DishSuggestion `json:"dishes" jsonschema:"required"`
}

type recipeResponse struct {
	Recipe Recipe `json:"recipe" jsonschema:"required"`
}
