package localllm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantalu/internal/recipe"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		apiURL:     serverURL,
		model:      "test-model",
	}
}

func TestIdentifyIngredients(t *testing.T) {
	var received Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(Response{
			Choices: []Choice{
				{Message: ResponseMessage{Role: "assistant", Content: "  1. Main Ingredients:\n   - 3 ripe tomatoes\n"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ingredients, err := client.IdentifyIngredients(context.Background(), []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "1. Main Ingredients:\n   - 3 ripe tomatoes", ingredients)

	// The request carries the analysis prompt plus the image as a data URL.
	require.Len(t, received.Messages, 1)
	require.Len(t, received.Messages[0].Content, 2)
	assert.Equal(t, recipe.IngredientAnalysisPrompt, received.Messages[0].Content[0].Text)
	require.NotNil(t, received.Messages[0].Content[1].ImageURL)
	assert.Contains(t, received.Messages[0].Content[1].ImageURL.URL, "data:image/jpeg;base64,")
}

func TestGenerateRecipe(t *testing.T) {
	var received Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(Response{
			Choices: []Choice{
				{Message: ResponseMessage{Role: "assistant", Content: "# Tomato Pappu\n# టమాటా పప్పు"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	prefs := recipe.Preferences{Region: "Andhra", MealCategory: "Lunch", SubCategory: "Thali", CookingStyle: "Traditional", CookingTime: 30, SpiceLevel: 3}
	text, err := client.GenerateRecipe(context.Background(), "3 ripe tomatoes", prefs)
	require.NoError(t, err)
	assert.Equal(t, "# Tomato Pappu\n# టమాటా పప్పు", text)

	// Text-only request: no image content part.
	require.Len(t, received.Messages, 1)
	require.Len(t, received.Messages[0].Content, 1)
	assert.Contains(t, received.Messages[0].Content[0].Text, "Andhra Indian Lunch recipe (Thali)")
}

func TestGenerateRecipe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateRecipe(context.Background(), "tomatoes", recipe.Preferences{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGenerateRecipe_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateRecipe(context.Background(), "tomatoes", recipe.Preferences{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
