package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/munchora/server/internal/service"
)

// LLMHandler handles AI recipe generation and update requests
type LLMHandler struct {
	recipeAI service.RecipeAI
	recipes  service.IRecipeService
	logger   *zap.Logger
}

// NewLLMHandler creates a new LLMHandler instance
func NewLLMHandler(recipeAI service.RecipeAI, recipes service.IRecipeService, logger *zap.Logger) *LLMHandler {
	return &LLMHandler{
		recipeAI: recipeAI,
		recipes:  recipes,
		logger:   logger,
	}
}

type aiRecipeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Generate handles POST /ai/recipes
func (h *LLMHandler) Generate(c *gin.Context) {
	var req aiRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeAI.GenerateRecipe(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		h.renderAIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// Update handles POST /ai/recipes/:id
func (h *LLMHandler) Update(c *gin.Context) {
	var req aiRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	existing, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}
	if existing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "recipe belongs to another user"})
		return
	}

	updated, err := h.recipeAI.UpdateRecipe(c.Request.Context(), userID, req.Prompt, existing)
	if err != nil {
		h.renderAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": updated})
}

// renderAIError maps the service error taxonomy onto HTTP statuses.
func (h *LLMHandler) renderAIError(c *gin.Context, err error) {
	var limitErr *service.UsageLimitExceededError
	var providerErr *service.ProviderError
	var malformedErr *service.MalformedResponseError
	var missingErr *service.MissingFieldsError

	switch {
	case errors.As(err, &limitErr):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": limitErr.Error()})
	case errors.As(err, &providerErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe generation is temporarily unavailable"})
	case errors.As(err, &malformedErr), errors.As(err, &missingErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the generated recipe could not be processed"})
	default:
		h.logger.Error("AI recipe request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// currentUserID resolves the authenticated user set by the auth
// middleware, writing a 401 response when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
