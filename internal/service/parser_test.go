package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munchora/server/internal/models"
)

const validRecipeJSON = `{
	"recipe": {
		"title": "Spaghetti Carbonara",
		"description": "Classic Italian pasta dish",
		"instructions": ["Cook pasta", "Mix eggs and cheese.", "Combine."],
		"ingredients": [
			{"name": "Spaghetti", "amount": "400", "category": "grains 🌾"},
			{"name": "Eggs", "amount": 4, "category": "dairy 🥚"},
			{"name": "Parmesan", "amount": 100, "category": "dairy 🥚"}
		],
		"cuisine": "italian",
		"difficulty": "medium",
		"tags": ["pasta", "italian", "quick"],
		"prep_time": 10,
		"cook_time": 20,
		"servings": 4
	}
}`

func TestParseRecipe(t *testing.T) {
	t.Run("parses a complete recipe", func(t *testing.T) {
		recipe, err := ParseRecipe(validRecipeJSON)
		require.NoError(t, err)

		assert.Equal(t, "Spaghetti Carbonara", recipe.Title)
		assert.Equal(t, "Classic Italian pasta dish", recipe.Description)
		assert.Equal(t, "italian", recipe.Cuisine)
		assert.Equal(t, "medium", recipe.Difficulty)
		assert.Equal(t, []string{"pasta", "italian", "quick"}, recipe.Tags)
		assert.Equal(t, 10, recipe.PrepTime)
		assert.Equal(t, 20, recipe.CookTime)
		assert.Equal(t, 4, recipe.Servings)
		require.Len(t, recipe.Ingredients, 3)
		assert.Equal(t, "Spaghetti", recipe.Ingredients[0].Name)
		assert.Equal(t, Amount(400), recipe.Ingredients[0].Amount)
		assert.Equal(t, "grains 🌾", recipe.Ingredients[0].Category)
	})

	t.Run("returns MalformedResponseError for invalid JSON", func(t *testing.T) {
		recipe, err := ParseRecipe("invalid json")

		assert.Nil(t, recipe)
		var malformed *MalformedResponseError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("returns MissingFieldsError naming absent keys", func(t *testing.T) {
		raw := `{"recipe": {"title": "Pasta", "description": "Yummy", "instructions": ["x"],
			"ingredients": [], "cuisine": "italian", "difficulty": "easy",
			"prep_time": 5, "cook_time": 5}}`

		recipe, err := ParseRecipe(raw)

		assert.Nil(t, recipe)
		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.ElementsMatch(t, []string{"servings", "tags"}, missing.Fields)
		assert.Contains(t, err.Error(), "servings")
		assert.Contains(t, err.Error(), "tags")
	})

	t.Run("returns MissingFieldsError when recipe object is absent", func(t *testing.T) {
		recipe, err := ParseRecipe(`{"not_a_recipe": {}}`)

		assert.Nil(t, recipe)
		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"recipe"}, missing.Fields)
	})

	t.Run("treats null required keys as missing", func(t *testing.T) {
		raw := `{"recipe": {"title": "Pasta", "description": "Yummy", "instructions": ["x"],
			"ingredients": [], "cuisine": "italian", "difficulty": "easy",
			"tags": null, "prep_time": 5, "cook_time": 5, "servings": 2}}`

		_, err := ParseRecipe(raw)

		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"tags"}, missing.Fields)
	})

	t.Run("normalizes unknown ingredient categories to the sentinel", func(t *testing.T) {
		raw := `{"recipe": {"title": "Test Recipe", "description": "Test",
			"instructions": ["Test"],
			"ingredients": [
				{"name": "Mystery", "amount": 100, "category": "InvalidCategory"},
				{"name": "Apple", "amount": 2, "category": "fruits 🍎"}
			],
			"cuisine": "test", "difficulty": "easy", "tags": ["test"],
			"prep_time": 10, "cook_time": 10, "servings": 2}}`

		recipe, err := ParseRecipe(raw)
		require.NoError(t, err)
		require.Len(t, recipe.Ingredients, 2)
		assert.Equal(t, models.CategoryNone, recipe.Ingredients[0].Category)
		assert.Equal(t, "fruits 🍎", recipe.Ingredients[1].Category)
	})
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Amount
		wantErr  bool
	}{
		{name: "number", input: `400`, expected: 400},
		{name: "numeric string", input: `"250"`, expected: 250},
		{name: "padded numeric string", input: `" 30 "`, expected: 30},
		{name: "float truncates", input: `2.7`, expected: 2},
		{name: "non-numeric string", input: `"hey"`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var amount Amount
			err := json.Unmarshal([]byte(tt.input), &amount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount)
		})
	}
}
