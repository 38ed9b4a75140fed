package recipes

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pantrychef/internal/ai"
)

// mockCompleter answers like a well-behaved model without the network.
type mockCompleter struct{}

func (mockCompleter) NormalizeIngredients(_ context.Context, rawIngredients string) (ai.IngredientList, string, error) {
	var list ai.IngredientList
	seen := map[string]bool{}
	for _, chunk := range strings.FieldsFunc(rawIngredients, func(r rune) bool { return r == ',' || r == '\n' }) {
		name := strings.ToLower(strings.TrimSpace(chunk))
		name = strings.TrimSuffix(name, "s")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		list = append(list, name)
	}
	return list, uuid.NewString(), nil
}

func (mockCompleter) SuggestDishes(_ context.Context, conversationID string, ingredients ai.IngredientList, max int) ([]ai.DishSuggestion, string, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	dishes := []ai.DishSuggestion{
		{Name: "Pancakes", Description: "Fluffy weekend pancakes."},
		{Name: "Omelette", Description: "Folded, not flipped."},
		{Name: "Glue Pizza", Description: "Sticky sauce trash style."},
	}
	if len(dishes) > max {
		dishes = dishes[:max]
	}
	return dishes, conversationID, nil
}

func (mockCompleter) GenerateRecipe(_ context.Context, conversationID string, req ai.RecipeRequest) (*ai.Recipe, string, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	recipe := &ai.Recipe{
		Title: req.Dish.Name,
		Ingredients: []ai.Ingredient{
			{Name: "flour", Quantity: 250, Unit: "g"},
			{Name: "egg", Quantity: 2, Unit: "whole"},
			{Name: "milk", Quantity: 300, Unit: "ml"},
		},
		Steps:       []string{"Whisk the batter.", "Fry in a hot pan."},
		PrepTime:    "10 min",
		CookTime:    "15 min",
		ScaleFactor: 1,
	}
	if req.Dietary != "" {
		recipe.Substitutions = map[string][]string{
			"milk": {"oat milk", "almond milk"},
		}
	}
	return recipe, conversationID, nil
}
