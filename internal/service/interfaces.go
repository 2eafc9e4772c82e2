package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/munchora/server/internal/models"
)

// CompletionClient is a synchronous call to an external text-completion
// endpoint. Implemented by OpenAIClient and by test stubs.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (*CompletionResult, error)
	Provider() string
}

// RecipeAI defines the AI recipe generation and update operations.
type RecipeAI interface {
	GenerateRecipe(ctx context.Context, userID uuid.UUID, prompt string) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID uuid.UUID, prompt string, recipe *models.Recipe) (*models.Recipe, error)
}

// IRecipeService defines the interface for recipe persistence operations
type IRecipeService interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}
