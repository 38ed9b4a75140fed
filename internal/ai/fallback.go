package ai

import (
	"context"
	"errors"
	"log/slog"

	"pantrychef/internal/config"
)

// FallbackCompleter tries a primary provider and falls over to a secondary
// one when the primary is unreachable. Format errors never trigger the
// fallback: the response arrived, the user should see it.
type FallbackCompleter struct {
	primary   Completer
	secondary Completer
}

var _ Completer = (*FallbackCompleter)(nil)

func NewFallbackCompleter(primary, secondary Completer) *FallbackCompleter {
	return &FallbackCompleter{primary: primary, secondary: secondary}
}

func (f *FallbackCompleter) NormalizeIngredients(ctx context.Context, rawIngredients string) (IngredientList, string, error) {
	list, id, err := f.primary.NormalizeIngredients(ctx, rawIngredients)
	if !shouldFallBack(ctx, err) {
		return list, id, err
	}
	return f.secondary.NormalizeIngredients(ctx, rawIngredients)
}

func (f *FallbackCompleter) SuggestDishes(ctx context.Context, conversationID string, ingredients IngredientList, max int) ([]DishSuggestion, string, error) {
	dishes, id, err := f.primary.SuggestDishes(ctx, conversationID, ingredients, max)
	if !shouldFallBack(ctx, err) {
		return dishes, id, err
	}
	return f.secondary.SuggestDishes(ctx, conversationID, ingredients, max)
}

func (f *FallbackCompleter) GenerateRecipe(ctx context.Context, conversationID string, req RecipeRequest) (*Recipe, string, error) {
	recipe, id, err := f.primary.GenerateRecipe(ctx, conversationID, req)
	if !shouldFallBack(ctx, err) {
		return recipe, id, err
	}
	return f.secondary.GenerateRecipe(ctx, conversationID, req)
}

func shouldFallBack(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	slog.InfoContext(ctx, "primary provider unreachable, trying fallback", "provider", te.Provider, "error", te.Err)
	return true
}

// NewFromConfig builds the configured completer, wrapping it in a fallback
// when a second provider is configured.
func NewFromConfig(cfg config.AIConfig) Completer {
	primary := NewClient(cfg.Provider, cfg.APIKey, cfg.Model, cfg.Endpoint)
	if cfg.FallbackProvider == "" {
		return primary
	}

	model := cfg.FallbackModel
	if model == "" {
		model = cfg.Model
	}
	apiKey := cfg.FallbackAPIKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	return NewFallbackCompleter(primary, NewClient(cfg.FallbackProvider, apiKey, model, ""))
}
