package ai

import (
	"fmt"
	"strings"
)

// SystemMessage is shared so provider-specific clients behave identically.
const SystemMessage = `You are a professional chef helping a home cook turn whatever is in their kitchen into dinner.

# Objective
Work through three tasks over the conversation: clean up the cook's ingredient list, propose dishes that use it, and write out a complete recipe for the dish they pick.

# Instructions
- Normalized ingredients use singular, lowercase names without quantities ("egg", not "2 Eggs").
- Dish suggestions must be cookable primarily from the listed ingredients plus pantry staples.
- Recipes list every ingredient with a numeric quantity and a unit, followed by ordered steps starting with prep.
- Quantities are always for the base serving count requested; never pre-scale them.
- Offer substitutions for ingredients a restricted diet would exclude.
- Respond only with JSON matching the requested schema.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func userMessage(msg string) chatMessage {
	return chatMessage{Role: "user", Content: msg}
}

func assistantMessage(msg string) chatMessage {
	return chatMessage{Role: "assistant", Content: msg}
}

func buildNormalizeMessages(rawIngredients string) []chatMessage {
	return []chatMessage{
		userMessage("Normalize this ingredient list. Split on commas and newlines, fix casing and pluralization, drop duplicates, keep the original order of first appearance:\n" + rawIngredients),
	}
}

func buildSuggestMessages(ingredients IngredientList, max int) []chatMessage {
	return []chatMessage{
		userMessage(fmt.Sprintf("Suggest up to %d dishes I could cook with these ingredients. One short sentence of description each.", max)),
		userMessage("Ingredients: " + strings.Join(ingredients, ", ")),
	}
}

// RecipeRequest carries everything the recipe stage needs from the user.
type RecipeRequest struct {
	Dish        DishSuggestion
	Ingredients IngredientList
	ScaleFactor float64
	Servings    int
	Units       string // "metric" or "imperial"
	Dietary     string // free-form constraint, e.g. "vegetarian"
}

func buildRecipeMessages(req RecipeRequest) []chatMessage {
	servings := req.Servings
	if servings <= 0 {
		servings = 4
	}
	units := req.Units
	if units == "" {
		units = "metric"
	}

	messages := []chatMessage{
		userMessage(fmt.Sprintf("Write the full recipe for %q using these ingredients where sensible: %s", req.Dish.Name, strings.Join(req.Ingredients, ", "))),
		userMessage(fmt.Sprintf("Scale for %d servings. Use %s units. Include prep and cook time.", servings, units)),
	}
	if req.Dietary != "" {
		messages = append(messages, userMessage("Dietary constraint: "+req.Dietary+". List substitutions for any ingredient that conflicts."))
	}
	return messages
}
