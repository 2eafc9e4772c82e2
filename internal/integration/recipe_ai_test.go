package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/munchora/server/internal/models"
	"github.com/munchora/server/internal/service"
	"github.com/munchora/server/internal/testdb"
)

type cannedClient struct {
	content          string
	promptTokens     int
	completionTokens int
}

func (c *cannedClient) Complete(ctx context.Context, system, user string) (*service.CompletionResult, error) {
	return &service.CompletionResult{
		Content:          c.content,
		PromptTokens:     c.promptTokens,
		CompletionTokens: c.completionTokens,
		Model:            "gpt-4.1-mini",
	}, nil
}

func (c *cannedClient) Provider() string {
	return service.ProviderOpenAI
}

func TestRecipeAIAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed integration test in short mode")
	}

	td := testdb.Setup(t)
	ctx := context.Background()
	userID := uuid.New()

	client := &cannedClient{
		content: `{"recipe": {"title": "Spaghetti Carbonara",
			"description": "Classic Italian pasta dish",
			"instructions": ["Cook pasta", "Mix eggs and cheese.", "Combine."],
			"ingredients": [
				{"name": "Spaghetti", "amount": 400, "category": "grains 🌾"},
				{"name": "Eggs", "amount": 4, "category": "dairy 🥚"}
			],
			"cuisine": "italian", "difficulty": "medium", "tags": ["pasta"],
			"prep_time": 10, "cook_time": 20, "servings": 4}}`,
		promptTokens:     100,
		completionTokens: 500,
	}
	ledger := service.NewUsageLedger(td.DB)
	svc := service.NewRecipeAIService(td.DB, client, ledger, 24*time.Hour, 10, zap.NewNop())

	recipe, err := svc.GenerateRecipe(ctx, userID, "Make me pasta")
	require.NoError(t, err)
	assert.Equal(t, "Spaghetti Carbonara", recipe.Title)

	var persisted models.Recipe
	require.NoError(t, td.DB.Preload("Ingredients").First(&persisted, "id = ?", recipe.ID).Error)
	assert.Len(t, persisted.Ingredients, 2)
	assert.False(t, persisted.IsPublic)

	count, err := ledger.CountSince(ctx, userID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	client.content = `{"recipe": {"title": "Updated Carbonara",
		"description": "Spicier",
		"instructions": ["Cook", "Add chili"],
		"ingredients": [{"name": "Chili", "amount": 2, "category": "spices 🌶️"}],
		"cuisine": "italian", "difficulty": "easy", "tags": ["spicy"],
		"prep_time": 10, "cook_time": 20, "servings": 4}}`

	updated, err := svc.UpdateRecipe(ctx, userID, "Make it spicier", &persisted)
	require.NoError(t, err)
	assert.Equal(t, persisted.ID, updated.ID)
	assert.Equal(t, "Updated Carbonara", updated.Title)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Chili", updated.Ingredients[0].Name)

	count, err = ledger.CountSince(ctx, userID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
