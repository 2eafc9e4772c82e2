package service

import (
	"fmt"
	"strings"

	"github.com/munchora/server/internal/models"
)

// originalRecipeMarker delimits the embedded prior state in update
// prompts so the model revises instead of generating from scratch.
const originalRecipeMarker = "ORIGINAL RECIPE:"

// recipeSystemPrompt is the versioned instruction describing the exact
// JSON document the model must return. v2: ingredient objects with
// amount and category.
var recipeSystemPrompt = `You are a professional chef. Respond ONLY with a JSON object of the following structure:
{
    "recipe": {
        "title": "Recipe title",
        "description": "Brief description of the recipe",
        "instructions": [
            "Step 1: ...",
            "Step 2: ..."
        ],
        "ingredients": [
            { "name": "Spaghetti", "amount": 400, "category": "grains 🌾" },
            { "name": "Eggs", "amount": 4, "category": "dairy 🥚" }
        ],
        "cuisine": "italian",
        "difficulty": "easy, medium or hard",
        "tags": ["pasta", "quick"],
        "prep_time": 10,
        "cook_time": 20,
        "servings": 4
    }
}

The amount field must be a positive whole number.
The prep_time, cook_time and servings fields must be numbers, not strings.
The category field MUST be one of: ` + ingredientCategoryList + `.`

var ingredientCategoryList = strings.Join(models.IngredientCategories, ", ")

// BuildRecipeMessages composes the system and user messages for a
// generation or update request. When existing is non-nil the user
// message embeds the recipe's current state under the
// "ORIGINAL RECIPE:" marker followed by the free-text instruction.
func BuildRecipeMessages(prompt string, existing *models.Recipe) (system, user string) {
	if existing == nil {
		return recipeSystemPrompt, prompt
	}

	var b strings.Builder
	b.WriteString(originalRecipeMarker)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Title: %s\n", existing.Title)
	fmt.Fprintf(&b, "Description: %s\n", existing.Description)
	fmt.Fprintf(&b, "Cuisine: %s\n", existing.Cuisine)
	fmt.Fprintf(&b, "Difficulty: %s\n", existing.Difficulty)
	fmt.Fprintf(&b, "Servings: %d\n", existing.Servings)
	if len(existing.Ingredients) > 0 {
		b.WriteString("Ingredients:\n")
		for _, ing := range existing.Ingredients {
			fmt.Fprintf(&b, "- %s (%d, %s)\n", ing.Name, ing.Amount, ing.Category)
		}
	}
	if len(existing.Instructions) > 0 {
		b.WriteString("Instructions:\n")
		for _, step := range existing.Instructions {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}
	b.WriteString("\nModification request: ")
	b.WriteString(prompt)

	return recipeSystemPrompt, b.String()
}
