package recipes

import (
	"log/slog"
	"net/http"
	"strings"
)

// handleSuggest asks for up to MaxSuggestions dishes. Zero dishes is a
// valid outcome, not an error.
func (s *server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	ingredientsText := r.Form.Get("ingredients")
	conversationID := r.Form.Get("conversation_id")
	ingredients := parseIngredientsField(ingredientsText)
	if len(ingredients) == 0 {
		renderHome(w, homeView{Error: "no ingredients to suggest from, start over"})
		return
	}

	dishes, newConversationID, err := s.completer.SuggestDishes(ctx, conversationID, ingredients, s.cfg.Wizard.MaxSuggestions)
	if err != nil {
		slog.ErrorContext(ctx, "dish suggestion failed", "error", err)
		msg, raw := describeError(err)
		renderIngredients(w, ingredientsView{
			Ingredients:     ingredients,
			IngredientsText: strings.Join(ingredients, "\n"),
			ConversationID:  conversationID,
			Error:           msg,
			Raw:             raw,
		})
		return
	}

	slog.InfoContext(ctx, "suggested dishes", "count", len(dishes), "conversation_id", newConversationID)
	renderDishes(w, dishesView{
		Dishes:          dishes,
		IngredientsText: strings.Join(ingredients, "\n"),
		ConversationID:  newConversationID,
	})
}
