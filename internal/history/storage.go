// Package history persists saved recipes to a local collection file. The
// file is a JSON array, rewritten whole on every save; the app serves one
// user at a time so there is no locking discipline.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pantrychef/internal/ai"
)

type SavedRecipe struct {
	ai.Recipe
	SavedAt time.Time `json:"saved_at"`
}

type Storage struct {
	storagePath string
	now         func() time.Time
}

func NewStorage(storagePath string) *Storage {
	return &Storage{
		storagePath: storagePath,
		now:         time.Now,
	}
}

// Ready reports whether the collection file's directory can be created.
func (s *Storage) Ready(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.storagePath), 0755); err != nil {
		return fmt.Errorf("saved recipes directory unavailable: %w", err)
	}
	return nil
}

// Save appends the recipe to the collection. Saving the same recipe twice
// appends two entries. A corrupt or missing file starts a fresh collection
// rather than failing the save.
func (s *Storage) Save(recipe ai.Recipe) error {
	saved := s.load()
	saved = append(saved, SavedRecipe{Recipe: recipe, SavedAt: s.now()})
	return s.write(saved)
}

// List returns every saved recipe in file order.
func (s *Storage) List() ([]SavedRecipe, error) {
	if _, err := os.Stat(s.storagePath); os.IsNotExist(err) {
		return nil, nil
	}
	data, err := os.ReadFile(s.storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved recipes: %w", err)
	}
	var saved []SavedRecipe
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to decode saved recipes: %w", err)
	}
	return saved, nil
}

// load is the forgiving read used on the save path.
func (s *Storage) load() []SavedRecipe {
	saved, err := s.List()
	if err != nil {
		slog.Warn("saved recipes file unreadable, starting a fresh collection", "path", s.storagePath, "error", err)
		return nil
	}
	return saved
}

func (s *Storage) write(saved []SavedRecipe) error {
	if err := os.MkdirAll(filepath.Dir(s.storagePath), 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal saved recipes: %w", err)
	}
	if err := os.WriteFile(s.storagePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write saved recipes: %w", err)
	}
	return nil
}
