package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/munchora/server/internal/models"
)

// RecipeAIService orchestrates AI recipe generation and updates:
// quota check, prompt building, the provider call, response parsing
// and the atomic persistence of recipe, ingredients and usage row.
type RecipeAIService struct {
	db     *gorm.DB
	client CompletionClient
	ledger *UsageLedger
	window time.Duration
	limit  int
	logger *zap.Logger
}

// NewRecipeAIService creates a new RecipeAIService instance
func NewRecipeAIService(db *gorm.DB, client CompletionClient, ledger *UsageLedger, window time.Duration, limit int, logger *zap.Logger) *RecipeAIService {
	return &RecipeAIService{
		db:     db,
		client: client,
		ledger: ledger,
		window: window,
		limit:  limit,
		logger: logger,
	}
}

// GenerateRecipe generates a new private recipe for userID from a
// free-text prompt. On success the recipe, its ingredients and one
// usage row are committed in a single transaction.
func (s *RecipeAIService) GenerateRecipe(ctx context.Context, userID uuid.UUID, prompt string) (*models.Recipe, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	system, user := BuildRecipeMessages(prompt, nil)
	result, err := s.client.Complete(ctx, system, user)
	if err != nil {
		s.logger.Error("recipe generation: provider call failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	parsed, err := ParseRecipe(result.Content)
	if err != nil {
		// The provider was billed for this call, but the ledger only
		// counts completed generations. Warn so provider drift shows up
		// in the logs.
		s.logger.Warn("recipe generation: discarding unusable completion",
			zap.String("user_id", userID.String()),
			zap.String("model", result.Model),
			zap.Error(err))
		return nil, err
	}

	recipe := &models.Recipe{
		ID:           uuid.New(),
		Title:        parsed.Title,
		Description:  parsed.Description,
		Instructions: models.JSONBStringArray(parsed.Instructions),
		Cuisine:      parsed.Cuisine,
		Difficulty:   parsed.Difficulty,
		Tags:         models.JSONBStringArray(parsed.Tags),
		PrepTime:     parsed.PrepTime,
		CookTime:     parsed.CookTime,
		Servings:     parsed.Servings,
		IsPublic:     false,
		UserID:       userID,
		Ingredients:  buildIngredients(parsed.Ingredients),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return s.ledger.Record(ctx, tx, s.usageRow(userID, &recipe.ID, prompt, result))
	})
	if err != nil {
		s.logger.Error("recipe generation: persistence failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("recipe generated",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipe.ID.String()),
		zap.Int("ingredients", len(recipe.Ingredients)))
	return recipe, nil
}

// UpdateRecipe revises an existing recipe from a free-text prompt. The
// mutable fields are overwritten and the ingredient set fully replaced
// inside one transaction; on any failure the stored recipe is left
// untouched.
func (s *RecipeAIService) UpdateRecipe(ctx context.Context, userID uuid.UUID, prompt string, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	system, user := BuildRecipeMessages(prompt, recipe)
	result, err := s.client.Complete(ctx, system, user)
	if err != nil {
		s.logger.Error("recipe update: provider call failed",
			zap.String("user_id", userID.String()),
			zap.String("recipe_id", recipe.ID.String()),
			zap.Error(err))
		return nil, err
	}

	parsed, err := ParseRecipe(result.Content)
	if err != nil {
		s.logger.Warn("recipe update: discarding unusable completion",
			zap.String("user_id", userID.String()),
			zap.String("recipe_id", recipe.ID.String()),
			zap.String("model", result.Model),
			zap.Error(err))
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":        parsed.Title,
			"description":  parsed.Description,
			"instructions": models.JSONBStringArray(parsed.Instructions),
			"cuisine":      parsed.Cuisine,
			"difficulty":   parsed.Difficulty,
			"tags":         models.JSONBStringArray(parsed.Tags),
			"prep_time":    parsed.PrepTime,
			"cook_time":    parsed.CookTime,
			"servings":     parsed.Servings,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		ingredients := buildIngredients(parsed.Ingredients)
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		return s.ledger.Record(ctx, tx, s.usageRow(userID, &recipe.ID, prompt, result))
	})
	if err != nil {
		s.logger.Error("recipe update: persistence failed",
			zap.String("user_id", userID.String()),
			zap.String("recipe_id", recipe.ID.String()),
			zap.Error(err))
		return nil, err
	}

	var updated models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients").First(&updated, "id = ?", recipe.ID).Error; err != nil {
		return nil, err
	}

	s.logger.Info("recipe updated",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", updated.ID.String()),
		zap.Int("ingredients", len(updated.Ingredients)))
	return &updated, nil
}

// checkQuota enforces the per-user usage bound before any external call
// or write. The check-then-record sequence is not serialized against
// concurrent requests; a hard bound would need a per-user lock around
// it.
func (s *RecipeAIService) checkQuota(ctx context.Context, userID uuid.UUID) error {
	windowStart := time.Now().Add(-s.window)
	count, err := s.ledger.CountSince(ctx, userID, windowStart)
	if err != nil {
		return err
	}
	if count >= int64(s.limit) {
		s.logger.Info("AI usage limit reached",
			zap.String("user_id", userID.String()),
			zap.Int64("count", count),
			zap.Int("limit", s.limit))
		return &UsageLimitExceededError{Limit: s.limit, Window: s.window}
	}
	return nil
}

func (s *RecipeAIService) usageRow(userID uuid.UUID, recipeID *uuid.UUID, prompt string, result *CompletionResult) *models.LlmUsage {
	return &models.LlmUsage{
		UserID:           userID,
		RecipeID:         recipeID,
		Provider:         s.client.Provider(),
		Model:            result.Model,
		Prompt:           prompt,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}
}

func buildIngredients(parsed []ParsedIngredient) []models.Ingredient {
	ingredients := make([]models.Ingredient, len(parsed))
	for i, p := range parsed {
		ingredients[i] = models.Ingredient{
			Name:     p.Name,
			Amount:   int(p.Amount),
			Category: p.Category,
		}
	}
	return ingredients
}
