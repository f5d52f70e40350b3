package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"

	"vantalu/internal/recipe"
)

// AIClient defines the interface for a generative AI backend capable of
// ingredient identification and recipe generation.
type AIClient interface {
	IdentifyIngredients(ctx context.Context, imageData []byte) (string, error)
	GenerateRecipe(ctx context.Context, ingredients string, prefs recipe.Preferences) (string, error)
}

// VideoSearcher defines the interface for tutorial video lookup.
type VideoSearcher interface {
	SearchRecipeVideos(ctx context.Context, recipeName, region, style string) ([]recipe.Video, error)
}

// RecipeStore defines the interface for saved recipe persistence.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, r *recipe.SavedRecipe) (int64, error)
	GetRecipe(ctx context.Context, id int64) (*recipe.SavedRecipe, error)
	ListRecipes(ctx context.Context, region, mealCategory string) ([]*recipe.SavedRecipe, error)
}

// Handler handles HTTP requests.
type Handler struct {
	GeminiClient   AIClient
	LocalLLMClient AIClient
	VideoSearcher  VideoSearcher
	RecipeStore    RecipeStore
}

// NewHandler creates a new Handler.
func NewHandler(geminiClient, localLLMClient AIClient, videoSearcher VideoSearcher, recipeStore RecipeStore) *Handler {
	return &Handler{
		GeminiClient:   geminiClient,
		LocalLLMClient: localLLMClient,
		VideoSearcher:  videoSearcher,
		RecipeStore:    recipeStore,
	}
}

// GenerateRequest is the body of POST /recipes/generate.
type GenerateRequest struct {
	Ingredients string             `json:"ingredients" binding:"required"`
	Preferences recipe.Preferences `json:"preferences" binding:"required"`
}

// GenerateResponse is the result of recipe generation: the recipe text, the
// names parsed from its heading lines, and any tutorial videos found.
type GenerateResponse struct {
	RecipeName       string         `json:"recipe_name"`
	RecipeNameTelugu string         `json:"recipe_name_telugu"`
	Recipe           string         `json:"recipe"`
	Videos           []recipe.Video `json:"videos"`
}

// SaveRequest is the body of POST /recipes.
type SaveRequest struct {
	RecipeName       string `json:"recipe_name" binding:"required"`
	RecipeNameTelugu string `json:"recipe_name_telugu"`
	Region           string `json:"region" binding:"required"`
	MealCategory     string `json:"meal_category" binding:"required"`
	CookingStyle     string `json:"cooking_style" binding:"required"`
	Ingredients      string `json:"ingredients" binding:"required"`
	Instructions     string `json:"instructions" binding:"required"`
	VideoLink        string `json:"video_link"`
	CookingTime      int    `json:"cooking_time"`
}

// Preferences returns the fixed preference taxonomy the form renders from.
func (h *Handler) Preferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions":         recipe.CuisineRegions,
		"meal_categories": recipe.MealCategoryNames,
		"sub_categories":  recipe.MealCategories,
		"cooking_styles":  recipe.CookingStyles,
		"cooking_time":    gin.H{"min": recipe.MinCookingTime, "max": recipe.MaxCookingTime},
		"spice_level":     gin.H{"min": recipe.MinSpiceLevel, "max": recipe.MaxSpiceLevel},
	})
}

// IdentifyIngredients handles ingredient photo uploads via Gemini.
func (h *Handler) IdentifyIngredients(c *gin.Context) {
	h.identifyIngredients(c, h.GeminiClient, "gemini")
}

// IdentifyIngredientsLocal handles ingredient photo uploads via the local LLM.
func (h *Handler) IdentifyIngredientsLocal(c *gin.Context) {
	h.identifyIngredients(c, h.LocalLLMClient, "local llm")
}

func (h *Handler) identifyIngredients(c *gin.Context, client AIClient, backend string) {
	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.String(http.StatusBadRequest, fmt.Sprintf("get form err: %s", err.Error()))
		return
	}

	// Validate file extension
	allowedExtensions := map[string]bool{
		".jpeg": true,
		".jpg":  true,
		".png":  true,
	}
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		c.String(http.StatusBadRequest, "Invalid file type. Only JPEG, JPG, and PNG images are allowed.")
		return
	}

	src, err := file.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("open file err: %s", err.Error()))
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("read image err: %s", err.Error()))
		return
	}

	imageData, err = prepareImage(imageData)
	if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid image: %s", err.Error()))
		return
	}

	// Create a context with a 45-second timeout for the external call
	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	ingredients, err := client.IdentifyIngredients(ctx, imageData)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Ingredient identification timed out after 45 seconds")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("%s err: %s", backend, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// GenerateRecipe generates a recipe with Gemini from identified ingredients
// and the submitted preferences, then looks up tutorial videos.
func (h *Handler) GenerateRecipe(c *gin.Context) {
	h.generateRecipe(c, h.GeminiClient, "gemini")
}

// GenerateRecipeLocal generates a recipe with the local LLM.
func (h *Handler) GenerateRecipeLocal(c *gin.Context) {
	h.generateRecipe(c, h.LocalLLMClient, "local llm")
}

func (h *Handler) generateRecipe(c *gin.Context, client AIClient, backend string) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}
	applyPreferenceDefaults(&req.Preferences)

	// Create a context with a 45-second timeout for the external calls
	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	recipeText, err := client.GenerateRecipe(ctx, req.Ingredients, req.Preferences)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Recipe generation timed out after 45 seconds")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("%s err: %s", backend, err.Error()))
		return
	}

	nameEnglish, nameTelugu := recipe.ParseNames(recipeText)

	// Video lookup is best effort: a search failure degrades to no videos.
	videos, err := h.VideoSearcher.SearchRecipeVideos(ctx, nameEnglish, req.Preferences.Region, req.Preferences.CookingStyle)
	if err != nil {
		log.Printf("video search failed for %q: %v", nameEnglish, err)
		videos = nil
	}

	c.JSON(http.StatusOK, GenerateResponse{
		RecipeName:       nameEnglish,
		RecipeNameTelugu: nameTelugu,
		Recipe:           recipeText,
		Videos:           videos,
	})
}

// SaveRecipe appends the generated recipe to the saved_recipes table on
// explicit user action.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := h.RecipeStore.SaveRecipe(ctx, &recipe.SavedRecipe{
		Name:         req.RecipeName,
		NameTelugu:   req.RecipeNameTelugu,
		Region:       req.Region,
		MealCategory: req.MealCategory,
		CookingStyle: req.CookingStyle,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		VideoLink:    req.VideoLink,
		CookingTime:  req.CookingTime,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database save timed out after 5 seconds")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to save recipe: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListRecipes retrieves saved recipes, optionally filtered by region or meal
// category.
func (h *Handler) ListRecipes(c *gin.Context) {
	region := c.Query("region")
	mealCategory := c.Query("meal_category")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecipes(ctx, region, mealCategory)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database query timed out after 5 seconds")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe retrieves a single saved recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid recipe id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	saved, err := h.RecipeStore.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database query timed out after 5 seconds")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}

	if saved == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// applyPreferenceDefaults fills omitted numeric preferences with the widget
// defaults and clamps them to the widget bounds.
func applyPreferenceDefaults(p *recipe.Preferences) {
	if p.CookingTime == 0 {
		p.CookingTime = 30
	}
	if p.SpiceLevel == 0 {
		p.SpiceLevel = 3
	}
	if p.CookingTime < recipe.MinCookingTime {
		p.CookingTime = recipe.MinCookingTime
	}
	if p.CookingTime > recipe.MaxCookingTime {
		p.CookingTime = recipe.MaxCookingTime
	}
	if p.SpiceLevel < recipe.MinSpiceLevel {
		p.SpiceLevel = recipe.MinSpiceLevel
	}
	if p.SpiceLevel > recipe.MaxSpiceLevel {
		p.SpiceLevel = recipe.MaxSpiceLevel
	}
}

// prepareImage decodes the upload and downscales anything wider than 800px
// before it is sent to the vision model. Output is always JPEG.
func prepareImage(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > 800 {
		img = resize.Resize(800, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
