package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vantalu/internal/recipe"
)

// Client is a client for the Gemini API. Ingredient identification runs on
// the vision model, recipe generation on the faster text model.
type Client struct {
	textModel   *genai.GenerativeModel
	visionModel *genai.GenerativeModel
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{
		textModel:   client.GenerativeModel("gemini-1.5-flash"),
		visionModel: client.GenerativeModel("gemini-1.5-pro"),
	}, nil
}

// IdentifyIngredients sends the uploaded photo to the vision model and
// returns its categorized ingredient breakdown as trimmed text.
func (c *Client) IdentifyIngredients(ctx context.Context, imageData []byte) (string, error) {
	prompt := []genai.Part{
		genai.Text(recipe.IngredientAnalysisPrompt),
		genai.ImageData("jpeg", imageData),
	}

	resp, err := c.visionModel.GenerateContent(ctx, prompt...)
	if err != nil {
		return "", err
	}

	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("ingredient identification: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateRecipe asks the text model for a recipe built from the identified
// ingredients and the user's preferences. The returned markdown opens with
// the English and Telugu recipe name headings.
func (c *Client) GenerateRecipe(ctx context.Context, ingredients string, prefs recipe.Preferences) (string, error) {
	prompt := recipe.BuildRecipePrompt(ingredients, prefs)

	resp, err := c.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("recipe generation: %w", err)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}
	return sb.String(), nil
}
