package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/munchora/server/internal/models"
)

// RecipeService handles recipe persistence operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GetRecipe retrieves a recipe with its ingredients by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists recipes for a user, or all public recipes if userID is nil
func (s *RecipeService) ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx).Preload("Ingredients")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("is_public = ?", true)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// DeleteRecipe deletes a recipe and its ingredients
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}
