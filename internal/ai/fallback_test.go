package ai

import (
	"context"
	"errors"
	"testing"

	"pantrychef/internal/config"
)

type scriptedCompleter struct {
	err   error
	calls int
}

func (s *scriptedCompleter) NormalizeIngredients(_ context.Context, _ string) (IngredientList, string, error) {
	s.calls++
	if s.err != nil {
		return nil, "", s.err
	}
	return IngredientList{"egg"}, "conv", nil
}

func (s *scriptedCompleter) SuggestDishes(_ context.Context, _ string, _ IngredientList, _ int) ([]DishSuggestion, string, error) {
	s.calls++
	if s.err != nil {
		return nil, "", s.err
	}
	return []DishSuggestion{{Name: "Omelette"}}, "conv", nil
}

func (s *scriptedCompleter) GenerateRecipe(_ context.Context, _ string, _ RecipeRequest) (*Recipe, string, error) {
	s.calls++
	if s.err != nil {
		return nil, "", s.err
	}
	return &Recipe{Title: "Omelette", Ingredients: []Ingredient{{Name: "egg", Quantity: 3, Unit: "whole"}}, ScaleFactor: 1}, "conv", nil
}

func TestFallbackOnTransportError(t *testing.T) {
	primary := &scriptedCompleter{err: &TransportError{Provider: "a", Err: errors.New("connection refused")}}
	secondary := &scriptedCompleter{}
	f := NewFallbackCompleter(primary, secondary)

	list, _, err := f.NormalizeIngredients(t.Context(), "eggs")
	if err != nil {
		t.Fatalf("expected fallback success, got %v", err)
	}
	if len(list) != 1 {
		t.Errorf("unexpected list: %v", list)
	}
	if secondary.calls != 1 {
		t.Errorf("secondary calls = %d, want 1", secondary.calls)
	}
}

func TestNoFallbackOnFormatError(t *testing.T) {
	primaryErr := &FormatError{Provider: "a", Raw: "prose", Err: errors.New("not json")}
	primary := &scriptedCompleter{err: primaryErr}
	secondary := &scriptedCompleter{}
	f := NewFallbackCompleter(primary, secondary)

	_, _, err := f.SuggestDishes(t.Context(), "", IngredientList{"egg"}, 5)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected the primary FormatError back, got %v", err)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary must not be consulted on format errors, calls = %d", secondary.calls)
	}
}

func TestBothProvidersDown(t *testing.T) {
	primary := &scriptedCompleter{err: &TransportError{Provider: "a", Err: errors.New("down")}}
	secondary := &scriptedCompleter{err: &TransportError{Provider: "b", Err: errors.New("also down")}}
	f := NewFallbackCompleter(primary, secondary)

	_, _, err := f.GenerateRecipe(t.Context(), "", RecipeRequest{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Provider != "b" {
		t.Errorf("expected the secondary's error, got provider %q", te.Provider)
	}
}

func TestNewFromConfig(t *testing.T) {
	single := NewFromConfig(config.AIConfig{Provider: "openrouter", Model: "m"})
	if _, ok := single.(*Client); !ok {
		t.Errorf("expected *Client without fallback config, got %T", single)
	}

	wrapped := NewFromConfig(config.AIConfig{Provider: "openrouter", Model: "m", FallbackProvider: "groq"})
	if _, ok := wrapped.(*FallbackCompleter); !ok {
		t.Errorf("expected *FallbackCompleter, got %T", wrapped)
	}
}
