package recipe

import (
	"strings"
	"time"
)

// CuisineRegions lists the regional Indian cuisines a user can pick from.
var CuisineRegions = []string{
	"Any",
	"Andhra",
	"Telangana",
	"South Indian",
	"North Indian",
	"Bengali",
	"Gujarati",
	"Maharashtrian",
	"Rajasthani",
	"Punjab",
}

// MealCategoryNames preserves the display order of MealCategories.
var MealCategoryNames = []string{"Breakfast", "Lunch", "Dinner", "Snacks"}

// MealCategories maps each meal category to its sub categories.
var MealCategories = map[string][]string{
	"Breakfast": {"Dosa", "Idli", "Upma", "Poha", "Paratha"},
	"Lunch":     {"Rice Based", "Roti Based", "Thali"},
	"Dinner":    {"Light Meals", "Full Course", "One Pot Meals"},
	"Snacks":    {"Tea Time", "Evening Snacks", "Quick Bites"},
}

// CookingStyles lists the supported cooking styles.
var CookingStyles = []string{
	"Traditional",
	"Modern Fusion",
	"Quick & Easy",
	"Healthy",
	"Low Oil",
	"One Pot",
}

// Bounds for the numeric preference widgets.
const (
	MinCookingTime = 15
	MaxCookingTime = 120
	MinSpiceLevel  = 1
	MaxSpiceLevel  = 5
)

// Preferences holds the choices the user submits before recipe generation.
type Preferences struct {
	Region       string `json:"region"`
	MealCategory string `json:"meal_category"`
	SubCategory  string `json:"sub_category"`
	CookingStyle string `json:"cooking_style"`
	CookingTime  int    `json:"cooking_time"`
	SpiceLevel   int    `json:"spice_level"`
}

// Video is a single tutorial video result.
type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SavedRecipe represents one row of the saved_recipes table.
type SavedRecipe struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"recipe_name" db:"recipe_name"`
	NameTelugu   string    `json:"recipe_name_telugu" db:"recipe_name_telugu"`
	Region       string    `json:"region" db:"region"`
	MealCategory string    `json:"meal_category" db:"meal_category"`
	CookingStyle string    `json:"cooking_style" db:"cooking_style"`
	Ingredients  string    `json:"ingredients" db:"ingredients"`
	Instructions string    `json:"instructions" db:"instructions"`
	VideoLink    string    `json:"video_link" db:"video_link"`
	CookingTime  int       `json:"cooking_time" db:"cooking_time"`
	CreatedAt    time.Time `json:"created_date" db:"created_date"`
}

// ParseNames extracts the English and Telugu recipe names from generated
// recipe text. The generation prompt mandates that the text open with two
// heading lines, English name first, Telugu name second. Blank lines before
// or between the headings are tolerated; a missing second heading leaves the
// Telugu name empty.
func ParseNames(recipeText string) (nameEnglish, nameTelugu string) {
	var names []string
	for _, line := range strings.Split(recipeText, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
		if line == "" {
			continue
		}
		names = append(names, line)
		if len(names) == 2 {
			break
		}
	}
	if len(names) > 0 {
		nameEnglish = names[0]
	}
	if len(names) > 1 {
		nameTelugu = names[1]
	}
	return nameEnglish, nameTelugu
}
