package recipes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"pantrychef/internal/ai"
)

// handleRecipe is the final AI stage. The model produces the scale-1
// baseline; the scale factor is applied here so doubling is exact
// arithmetic, not a model opinion.
func (s *server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	view := recipeView{
		DishName:        strings.TrimSpace(r.Form.Get("dish_name")),
		DishDescription: r.Form.Get("dish_description"),
		IngredientsText: r.Form.Get("ingredients"),
		ConversationID:  r.Form.Get("conversation_id"),
		Scale:           r.Form.Get("scale"),
		Servings:        r.Form.Get("servings"),
		Units:           r.Form.Get("units"),
		Dietary:         strings.TrimSpace(r.Form.Get("dietary")),
	}

	if view.DishName == "" {
		http.Error(w, "missing dish name", http.StatusBadRequest)
		return
	}

	scale, err := parseScale(view.Scale)
	if err != nil {
		view.Error = err.Error()
		renderRecipe(w, view)
		return
	}

	servings := 4
	if view.Servings != "" {
		if servings, err = strconv.Atoi(view.Servings); err != nil || servings < 1 {
			view.Error = "servings must be a positive whole number"
			renderRecipe(w, view)
			return
		}
	}

	req := ai.RecipeRequest{
		Dish:        ai.DishSuggestion{Name: view.DishName, Description: view.DishDescription},
		Ingredients: parseIngredientsField(view.IngredientsText),
		ScaleFactor: scale,
		Servings:    servings,
		Units:       view.Units,
		Dietary:     view.Dietary,
	}

	baseline, conversationID, err := s.completer.GenerateRecipe(ctx, view.ConversationID, req)
	if err != nil {
		var fe *ai.FormatError
		if errors.As(err, &fe) && fe.Raw != "" {
			// display-as-text fallback: the response is still worth reading
			// and still savable
			s.serveRawRecipe(w, r, view, fe.Raw)
			return
		}
		slog.ErrorContext(ctx, "recipe generation failed", "dish", view.DishName, "error", err)
		view.Error, view.Raw = describeError(err)
		renderRecipe(w, view)
		return
	}
	view.ConversationID = conversationID

	recipe := baseline.Scaled(scale)
	hash, err := s.SaveRecipe(ctx, recipe)
	if err != nil {
		slog.ErrorContext(ctx, "failed to cache generated recipe", "dish", view.DishName, "error", err)
		// still show it; only the save button is degraded
	}

	view.Recipe = recipe
	view.Hash = hash
	renderRecipe(w, view)
}

func (s *server) serveRawRecipe(w http.ResponseWriter, r *http.Request, view recipeView, raw string) {
	ctx := r.Context()
	recipe := &ai.Recipe{RawText: raw}
	hash, err := s.SaveRecipe(ctx, recipe)
	if err != nil {
		slog.ErrorContext(ctx, "failed to cache raw recipe text", "dish", view.DishName, "error", err)
	}
	slog.InfoContext(ctx, "serving free-text recipe fallback", "dish", view.DishName, "hash", hash)
	view.Recipe = recipe
	view.Hash = hash
	renderRecipe(w, view)
}

func parseScale(value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 1.0, nil
	}
	scale, err := strconv.ParseFloat(value, 64)
	if err != nil || scale <= 0 {
		return 0, errors.New("scale factor must be a positive number")
	}
	return scale, nil
}
