package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/samber/lo"

	"pantrychef/internal/ai"
	"pantrychef/internal/cache"
)

const recipeCachePrefix = "recipe/"

type recipeio struct {
	Cache cache.Cache
}

// SaveRecipe stores the recipe under its content hash so the view and the
// save action can agree on exactly which document the user is looking at.
func (rio recipeio) SaveRecipe(ctx context.Context, recipe *ai.Recipe) (string, error) {
	hash := recipe.ComputeHash()
	recipeJSON := lo.Must(json.Marshal(recipe))
	if err := rio.Cache.Put(ctx, recipeCachePrefix+hash, string(recipeJSON), cache.IfNoneMatch()); err != nil {
		if errors.Is(err, cache.ErrAlreadyExists) {
			return hash, nil
		}
		slog.ErrorContext(ctx, "failed to cache recipe", "title", recipe.Title, "hash", hash, "error", err)
		return "", err
	}
	slog.InfoContext(ctx, "cached recipe", "title", recipe.Title, "hash", hash)
	return hash, nil
}

func (rio recipeio) FromCache(ctx context.Context, hash string) (*ai.Recipe, error) {
	reader, err := rio.Cache.Get(ctx, recipeCachePrefix+hash)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close cached recipe", "hash", hash, "error", err)
		}
	}()

	var recipe ai.Recipe
	if err := json.NewDecoder(reader).Decode(&recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}
