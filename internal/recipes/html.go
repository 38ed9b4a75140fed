package recipes

import (
	"errors"
	"log/slog"
	"net/http"

	"pantrychef/internal/ai"
	"pantrychef/internal/history"
	"pantrychef/internal/templates"
)

type homeView struct {
	RawInput string
	Error    string
	Raw      string
}

type ingredientsView struct {
	Ingredients     ai.IngredientList
	IngredientsText string
	ConversationID  string
	Error           string
	Raw             string
}

type dishesView struct {
	Dishes          []ai.DishSuggestion
	IngredientsText string
	ConversationID  string
	Error           string
	Raw             string
}

type recipeView struct {
	Recipe *ai.Recipe
	Hash   string
	Error  string
	Raw    string

	// retry fields, echoed back into the form
	DishName        string
	DishDescription string
	IngredientsText string
	ConversationID  string
	Scale           string
	Servings        string
	Units           string
	Dietary         string
}

type savedView struct {
	Saved []history.SavedRecipe
}

// renderHome draws the ingredient input stage.
func renderHome(w http.ResponseWriter, view homeView) {
	if err := templates.Home.Execute(w, view); err != nil {
		slog.Error("home template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func renderIngredients(w http.ResponseWriter, view ingredientsView) {
	if err := templates.Ingredients.Execute(w, view); err != nil {
		slog.Error("ingredients template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func renderDishes(w http.ResponseWriter, view dishesView) {
	if err := templates.Dishes.Execute(w, view); err != nil {
		slog.Error("dishes template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func renderRecipe(w http.ResponseWriter, view recipeView) {
	if err := templates.Recipe.Execute(w, view); err != nil {
		slog.Error("recipe template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func renderSaved(w http.ResponseWriter, view savedView) {
	if err := templates.Saved.Execute(w, view); err != nil {
		slog.Error("saved template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// describeError splits a stage failure into the message shown inline and the
// raw service response offered for inspection.
func describeError(err error) (msg, raw string) {
	var fe *ai.FormatError
	if errors.As(err, &fe) {
		return err.Error(), fe.Raw
	}
	return err.Error(), ""
}
