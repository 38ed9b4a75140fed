// Package recipes implements the four-stage wizard: enter ingredients,
// normalize them, pick a suggested dish, generate and optionally save the
// recipe. Each stage has one success transition forward and one failure
// transition back to itself.
package recipes

import (
	"errors"
	"log/slog"
	"net/http"

	"pantrychef/internal/ai"
	"pantrychef/internal/cache"
	"pantrychef/internal/config"
	"pantrychef/internal/history"
)

type server struct {
	recipeio
	cfg       *config.Config
	completer ai.Completer
	storage   *history.Storage
}

// NewHandler returns the handler serving the wizard stages. The cache keeps
// generated recipes addressable by hash between the view and the save.
func NewHandler(cfg *config.Config, completer ai.Completer, storage *history.Storage, c cache.Cache) *server {
	return &server{
		recipeio:  recipeio{Cache: c},
		cfg:       cfg,
		completer: completer,
		storage:   storage,
	}
}

func (s *server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /normalize", s.handleNormalize)
	mux.HandleFunc("POST /suggest", s.handleSuggest)
	mux.HandleFunc("POST /recipe", s.handleRecipe)
	mux.HandleFunc("GET /recipe/{hash}", s.handleSingle)
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("GET /saved", s.handleSaved)
}

func (s *server) handleHome(w http.ResponseWriter, _ *http.Request) {
	renderHome(w, homeView{})
}

// handleSingle re-serves a previously generated recipe by content hash.
func (s *server) handleSingle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash := r.PathValue("hash")
	if hash == "" {
		http.Error(w, "missing recipe hash", http.StatusBadRequest)
		return
	}

	recipe, err := s.FromCache(ctx, hash)
	if err != nil {
		http.Error(w, "recipe not found", http.StatusNotFound)
		return
	}

	slog.InfoContext(ctx, "serving recipe by hash", "hash", hash)
	renderRecipe(w, recipeView{Recipe: recipe, Hash: hash, DishName: recipe.Title})
}

// handleSave appends the cached recipe to the local collection. No dedup:
// saving twice stores two entries.
func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	hash := r.Form.Get("hash")
	if hash == "" {
		http.Error(w, "missing recipe hash", http.StatusBadRequest)
		return
	}

	recipe, err := s.FromCache(ctx, hash)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			http.Error(w, "recipe not found or expired", http.StatusNotFound)
			return
		}
		slog.ErrorContext(ctx, "failed to load recipe for save", "hash", hash, "error", err)
		http.Error(w, "failed to load recipe", http.StatusInternalServerError)
		return
	}

	if err := s.storage.Save(*recipe); err != nil {
		slog.ErrorContext(ctx, "failed to save recipe", "hash", hash, "error", err)
		http.Error(w, "failed to save recipe", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "saved recipe", "title", recipe.Title, "hash", hash)
	http.Redirect(w, r, "/saved", http.StatusSeeOther)
}

func (s *server) handleSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := s.storage.List()
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list saved recipes", "error", err)
		http.Error(w, "failed to read saved recipes", http.StatusInternalServerError)
		return
	}
	renderSaved(w, savedView{Saved: saved})
}
