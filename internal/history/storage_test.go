package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/ai"
)

func testRecipe() ai.Recipe {
	return ai.Recipe{
		Title: "Pancakes",
		Ingredients: []ai.Ingredient{
			{Name: "flour", Quantity: 250, Unit: "g"},
		},
		Steps:       []string{"mix", "fry"},
		ScaleFactor: 1,
	}
}

func TestSaveAppendsWithoutDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "saved_recipes.json")
	s := NewStorage(path)

	require.NoError(t, s.Save(testRecipe()))
	require.NoError(t, s.Save(testRecipe()))

	saved, err := s.List()
	require.NoError(t, err)
	assert.Len(t, saved, 2, "saving the same recipe twice appends two entries")
	assert.Equal(t, "Pancakes", saved[0].Title)
	assert.False(t, saved[0].SavedAt.IsZero())
}

func TestNSavesYieldNEntries(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "saved.json"))
	const n = 7
	for range n {
		require.NoError(t, s.Save(testRecipe()))
	}
	saved, err := s.List()
	require.NoError(t, err)
	assert.Len(t, saved, n)
}

func TestListMissingFileIsEmpty(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "nothing.json"))
	saved, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestCorruptFileDoesNotFailSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{not json"), 0644))

	s := NewStorage(path)
	require.NoError(t, s.Save(testRecipe()), "save must recover from a corrupt file")

	saved, err := s.List()
	require.NoError(t, err)
	assert.Len(t, saved, 1, "corrupt file resets to an empty collection before the append")
}

func TestOrderPreserved(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "saved.json"))
	s.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	first := testRecipe()
	second := testRecipe()
	second.Title = "Crepes"
	require.NoError(t, s.Save(first))
	require.NoError(t, s.Save(second))

	saved, err := s.List()
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Pancakes", saved[0].Title)
	assert.Equal(t, "Crepes", saved[1].Title)
}

func TestRawTextRecipeIsSavable(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "saved.json"))
	require.NoError(t, s.Save(ai.Recipe{RawText: "Heat pan. Cook things."}))

	saved, err := s.List()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].IsRaw())
	assert.Equal(t, "Heat pan. Cook things.", saved[0].RawText)
}
