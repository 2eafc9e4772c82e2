package router

import (
	"github.com/gin-gonic/gin"

	"github.com/munchora/server/internal/api"
	"github.com/munchora/server/internal/middleware"
)

// Setup configures the application routes
func Setup(
	recipeHandler *api.RecipeHandler,
	llmHandler *api.LLMHandler,
	authService middleware.TokenValidator,
	aiLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		recipes := protected.Group("/recipes")
		{
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
		}

		ai := protected.Group("/ai")
		if aiLimiter != nil {
			ai.Use(aiLimiter.Middleware())
		}
		{
			ai.POST("/recipes", llmHandler.Generate)
			ai.POST("/recipes/:id", llmHandler.Update)
		}
	}

	return router
}
