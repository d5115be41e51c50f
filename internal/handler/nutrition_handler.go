package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/menulist-tracker/internal/provider/nutritionix"
	"github.com/aebalz/menulist-tracker/internal/provider/spoonacular"
)

// NutritionHandler proxies the upstream recipe/nutrition APIs. Upstream data
// is enrichment only and is never persisted as source of truth.
type NutritionHandler struct {
	Spoonacular *spoonacular.Client
	Nutritionix *nutritionix.Client
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(spoon *spoonacular.Client, nutri *nutritionix.Client) *NutritionHandler {
	return &NutritionHandler{Spoonacular: spoon, Nutritionix: nutri}
}

// AnalyzeRequest is the POST /api/recipes/analyze payload.
type AnalyzeRequest struct {
	Ingredients []string `json:"ingredients"`
}

// NutritionQueryRequest is the POST /api/nutrition/analyze payload.
type NutritionQueryRequest struct {
	Query string `json:"query"`
}

// upstreamFailure maps a provider error to a response, attaching the upstream
// body when one is available for diagnostics.
func upstreamFailure(err error, msg string) (int, any) {
	var spoonErr *spoonacular.UpstreamError
	if errors.As(err, &spoonErr) {
		return http.StatusBadGateway, map[string]any{"error": msg, "upstream": json.RawMessage(spoonErr.Body)}
	}
	var nutriErr *nutritionix.UpstreamError
	if errors.As(err, &nutriErr) {
		return http.StatusBadGateway, map[string]any{"error": msg, "upstream": json.RawMessage(nutriErr.Body)}
	}
	return http.StatusInternalServerError, map[string]string{"error": msg}
}

func (h *NutritionHandler) searchRecipes(ctx context.Context, query string) (int, any) {
	if query == "" {
		return http.StatusBadRequest, map[string]string{"error": "Search query is required"}
	}
	results, err := h.Spoonacular.SearchRecipes(ctx, query)
	if err != nil {
		return upstreamFailure(err, "Failed to fetch recipes from Spoonacular")
	}
	return http.StatusOK, results
}

func (h *NutritionHandler) searchFoods(ctx context.Context, query string) (int, any) {
	if query == "" {
		return http.StatusBadRequest, map[string]string{"error": "Search query is required"}
	}
	results, err := h.Spoonacular.SearchIngredients(ctx, query)
	if err != nil {
		return upstreamFailure(err, "Failed to search foods")
	}
	return http.StatusOK, results
}

func (h *NutritionHandler) analyzeRecipe(ctx context.Context, req AnalyzeRequest) (int, any) {
	if len(req.Ingredients) == 0 {
		return http.StatusBadRequest, map[string]string{"error": "Ingredients list is required and must be a non-empty array"}
	}
	result, err := h.Spoonacular.AnalyzeRecipe(ctx, req.Ingredients)
	if err != nil {
		return upstreamFailure(err, "Failed to analyze meal")
	}
	return http.StatusOK, result
}

func (h *NutritionHandler) analyzeNutrition(ctx context.Context, req NutritionQueryRequest) (int, any) {
	if req.Query == "" {
		return http.StatusBadRequest, map[string]string{"error": "Query is required"}
	}
	result, err := h.Nutritionix.AnalyzeQuery(ctx, req.Query)
	if err != nil {
		return upstreamFailure(err, "Failed to analyze nutrition")
	}
	return http.StatusOK, result
}

// SearchRecipesFiber handles GET /api/recipes/search.
func (h *NutritionHandler) SearchRecipesFiber(c *fiber.Ctx) error {
	status, body := h.searchRecipes(c.UserContext(), c.Query("query"))
	return c.Status(status).JSON(body)
}

// SearchRecipesGin handles GET /api/recipes/search.
func (h *NutritionHandler) SearchRecipesGin(c *gin.Context) {
	status, body := h.searchRecipes(c.Request.Context(), c.Query("query"))
	c.JSON(status, body)
}

// SearchFoodsFiber handles GET /api/foods/search.
func (h *NutritionHandler) SearchFoodsFiber(c *fiber.Ctx) error {
	status, body := h.searchFoods(c.UserContext(), c.Query("query"))
	return c.Status(status).JSON(body)
}

// SearchFoodsGin handles GET /api/foods/search.
func (h *NutritionHandler) SearchFoodsGin(c *gin.Context) {
	status, body := h.searchFoods(c.Request.Context(), c.Query("query"))
	c.JSON(status, body)
}

// AnalyzeRecipeFiber handles POST /api/recipes/analyze.
func (h *NutritionHandler) AnalyzeRecipeFiber(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.analyzeRecipe(c.UserContext(), req)
	return c.Status(status).JSON(body)
}

// AnalyzeRecipeGin handles POST /api/recipes/analyze.
func (h *NutritionHandler) AnalyzeRecipeGin(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.analyzeRecipe(c.Request.Context(), req)
	c.JSON(status, body)
}

// AnalyzeNutritionFiber handles POST /api/nutrition/analyze.
func (h *NutritionHandler) AnalyzeNutritionFiber(c *fiber.Ctx) error {
	var req NutritionQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.analyzeNutrition(c.UserContext(), req)
	return c.Status(status).JSON(body)
}

// AnalyzeNutritionGin handles POST /api/nutrition/analyze.
func (h *NutritionHandler) AnalyzeNutritionGin(c *gin.Context) {
	var req NutritionQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.analyzeNutrition(c.Request.Context(), req)
	c.JSON(status, body)
}
