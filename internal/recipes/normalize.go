package recipes

import (
	"log/slog"
	"net/http"
	"strings"
)

// handleNormalize is the first AI stage: raw text in, cleaned list out.
// Failure re-displays the input form; nothing is retried automatically.
func (s *server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	rawInput := strings.TrimSpace(r.Form.Get("ingredients"))
	if rawInput == "" {
		renderHome(w, homeView{Error: "enter at least one ingredient"})
		return
	}

	list, conversationID, err := s.completer.NormalizeIngredients(ctx, rawInput)
	if err != nil {
		slog.ErrorContext(ctx, "normalization failed", "error", err)
		msg, raw := describeError(err)
		renderHome(w, homeView{RawInput: rawInput, Error: msg, Raw: raw})
		return
	}

	slog.InfoContext(ctx, "normalized ingredients", "count", len(list), "conversation_id", conversationID)
	renderIngredients(w, ingredientsView{
		Ingredients:     list,
		IngredientsText: strings.Join(list, "\n"),
		ConversationID:  conversationID,
	})
}

// parseIngredientsField reads the newline-joined hidden field the previous
// stage emitted.
func parseIngredientsField(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
