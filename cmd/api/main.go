package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vantalu/internal/api"
	"vantalu/internal/platform/gemini"
	"vantalu/internal/platform/localllm"
	"vantalu/internal/platform/youtube"
	"vantalu/internal/recipe"
)

// Config represents the application configuration.
type Config struct {
	GeminiAPIKey  string
	YouTubeAPIKey string
	DatabaseURL   string
}

// loadConfig reads the required credentials from the environment. Each
// missing value is a startup error: the server never reaches the interactive
// phase without them.
func loadConfig() (Config, error) {
	config := Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}

	if config.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("Gemini API key not found. Please add GEMINI_API_KEY to your .env file")
	}
	if config.YouTubeAPIKey == "" {
		return Config{}, fmt.Errorf("YouTube API key not found. Please add YOUTUBE_API_KEY to your .env file")
	}
	if config.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database URL not found. Please add DATABASE_URL to your .env file")
	}

	return config, nil
}

func main() {
	ctx := context.Background()

	// A missing .env file is fine when the variables are already exported.
	_ = godotenv.Load()

	config, err := loadConfig()
	if err != nil {
		panic(err)
	}

	geminiClient, err := gemini.NewClient(ctx, config.GeminiAPIKey)
	if err != nil {
		panic(fmt.Errorf("error creating gemini client: %w", err))
	}

	youtubeClient, err := youtube.NewClient(ctx, config.YouTubeAPIKey)
	if err != nil {
		panic(fmt.Errorf("error creating youtube client: %w", err))
	}

	localLLMClient := localllm.NewClient()

	dbStore, err := recipe.NewPostgresStore(config.DatabaseURL)
	if err != nil {
		panic(fmt.Errorf("error creating postgresstore: %w", err))
	}

	handler := api.NewHandler(geminiClient, localLLMClient, youtubeClient, dbStore)

	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/preferences", handler.Preferences)
	r.POST("/ingredients", handler.IdentifyIngredients)
	r.POST("/v2/ingredients", handler.IdentifyIngredientsLocal)
	r.POST("/recipes/generate", handler.GenerateRecipe)
	r.POST("/v2/recipes/generate", handler.GenerateRecipeLocal)
	r.POST("/recipes", handler.SaveRecipe)
	r.GET("/recipes", handler.ListRecipes)
	r.GET("/recipes/:id", handler.GetRecipe)

	r.Run(":8080") // listen and serve on 0.0.0.0:8080
}
