package localllm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"vantalu/internal/recipe"
)

// Client talks to an OpenAI-compatible chat completions endpoint served by a
// locally hosted model. It backs the /v2 routes as an offline alternative to
// Gemini.
type Client struct {
	httpClient *http.Client
	apiURL     string
	model      string
}

// NewClient creates a new client for the local LLM.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		apiURL:     "http://localhost:1234/v1/chat/completions",
		model:      "gemma-3-12b-it:2",
	}
}

// Request represents the request body for the local LLM.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a message in the request.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content represents the content of a message.
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents the image URL in the content.
type ImageURL struct {
	URL string `json:"url"`
}

// Response represents the response from the local LLM.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message ResponseMessage `json:"message"`
}

// ResponseMessage represents a message in the response.
type ResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IdentifyIngredients sends the uploaded photo to the local model and returns
// its categorized ingredient breakdown as trimmed text.
func (c *Client) IdentifyIngredients(ctx context.Context, imageData []byte) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)
	text, err := c.generateContent(ctx, recipe.IngredientAnalysisPrompt, encoded)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateRecipe asks the local model for a recipe built from the identified
// ingredients and the user's preferences.
func (c *Client) GenerateRecipe(ctx context.Context, ingredients string, prefs recipe.Preferences) (string, error) {
	return c.generateContent(ctx, recipe.BuildRecipePrompt(ingredients, prefs), "")
}

// generateContent sends a chat completion request to the local LLM and
// returns the first choice. imageData, when non-empty, is base64-encoded JPEG
// attached as a data URL.
func (c *Client) generateContent(ctx context.Context, text string, imageData string) (string, error) {
	content := []Content{
		{
			Type: "text",
			Text: text,
		},
	}
	if imageData != "" {
		content = append(content, Content{
			Type: "image_url",
			ImageURL: &ImageURL{
				URL: "data:image/jpeg;base64," + imageData,
			},
		})
	}

	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{
				Role:    "user",
				Content: content,
			},
		},
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to local llm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local llm returned status %d", resp.StatusCode)
	}

	var llmResp Response
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode local llm response: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from local llm")
	}

	return llmResp.Choices[0].Message.Content, nil
}
