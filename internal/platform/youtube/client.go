package youtube

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"vantalu/internal/recipe"
)

const maxResults = 3

// Client is a client for the YouTube Data API v3 search endpoint.
type Client struct {
	service *ytapi.Service
}

// NewClient creates a new YouTube client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{service: service}, nil
}

// BuildSearchQuery assembles the tutorial search query from the recipe name,
// region and cooking style. The Telugu terms bias results toward Telugu
// cooking channels.
func BuildSearchQuery(recipeName, region, style string) string {
	styleTerm := strings.ToLower(style)
	if style == "Traditional" {
		styleTerm = "traditional"
	}
	return fmt.Sprintf("%s %s %s recipe telugu vantalu తెలుగు వంటలు", recipeName, region, styleTerm)
}

// SearchRecipeVideos searches for up to 3 high-definition tutorial videos
// matching the recipe. An empty result list is not an error.
func (c *Client) SearchRecipeVideos(ctx context.Context, recipeName, region, style string) ([]recipe.Video, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(BuildSearchQuery(recipeName, region, style)).
		Type("video").
		MaxResults(maxResults).
		RelevanceLanguage("te").
		RegionCode("IN").
		VideoDefinition("high").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	var videos []recipe.Video
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, recipe.Video{
			ID:    item.Id.VideoId,
			Title: item.Snippet.Title,
			URL:   "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		})
	}
	return videos, nil
}
