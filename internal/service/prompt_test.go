package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/munchora/server/internal/models"
)

func TestBuildRecipeMessages(t *testing.T) {
	t.Run("generation uses the prompt as-is", func(t *testing.T) {
		system, user := BuildRecipeMessages("Make me pasta", nil)

		assert.Equal(t, recipeSystemPrompt, system)
		assert.Equal(t, "Make me pasta", user)
		assert.NotContains(t, user, originalRecipeMarker)
	})

	t.Run("update embeds the original recipe under the marker", func(t *testing.T) {
		existing := &models.Recipe{
			Title:        "Old Title",
			Description:  "A mild dish",
			Cuisine:      "italian",
			Difficulty:   "easy",
			Servings:     4,
			Instructions: models.JSONBStringArray{"Boil water", "Add pasta"},
			Ingredients: []models.Ingredient{
				{Name: "Old Ingredient", Amount: 100, Category: "grains 🌾"},
			},
		}

		system, user := BuildRecipeMessages("Make it spicier", existing)

		assert.Equal(t, recipeSystemPrompt, system)
		assert.Contains(t, user, "ORIGINAL RECIPE:")
		assert.Contains(t, user, "Old Title")
		assert.Contains(t, user, "Make it spicier")
		assert.Contains(t, user, "Old Ingredient")
		assert.Contains(t, user, "Boil water")
	})

	t.Run("system prompt pins the response schema", func(t *testing.T) {
		system, _ := BuildRecipeMessages("anything", nil)

		for _, key := range requiredRecipeKeys {
			assert.Contains(t, system, key)
		}
		assert.Contains(t, system, models.CategoryNone)
	})
}
