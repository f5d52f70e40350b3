package recipe

import "fmt"

// IngredientAnalysisPrompt is sent alongside the uploaded photo to the vision
// model. It asks for a categorized breakdown of the visible ingredients.
const IngredientAnalysisPrompt = `Analyze this image and provide a detailed breakdown of Indian ingredients in the following format:

1. Main Ingredients:
   - List each visible main ingredient with quantity
   - Specify condition (fresh, dried, processed)

2. Spices and Seasonings:
   - List visible spices with approximate quantities
   - Note whole vs ground form

3. Aromatics and Herbs:
   - Identify fresh herbs, onions, garlic, ginger etc.
   - Specify quantity and condition

4. Additional Components:
   - Any visible oils, ghee, or cooking mediums
   - Special ingredients or regional specifics

For each ingredient, provide:
- Exact or estimated quantity
- Condition/form
- Any visible quality indicators
- Common Indian name if applicable

Format each category separately and be very precise with measurements.`

// BuildRecipePrompt renders the recipe generation prompt from the identified
// ingredients and the user's preferences. The mandated response format opens
// with two heading lines (English name, then Telugu name) that ParseNames
// relies on.
func BuildRecipePrompt(ingredients string, prefs Preferences) string {
	return fmt.Sprintf(`Create a detailed %s Indian %s recipe (%s) based on these identified ingredients:

%s

Requirements:
- Cooking Style: %s
- Maximum Time: %d minutes
- Spice Level: %d/5

Format the response as:

# [RECIPE NAME IN ENGLISH]
# [RECIPE NAME IN TELUGU]

## Ingredients
[List all ingredients with precise measurements]

## Preparation Steps (with time estimates)
1. [Step-by-step instructions]

## Cooking Method
1. [Detailed cooking steps]

## Tips & Variations
- [Regional variations]
- [Time-saving tips]
- [Storage suggestions]

## Serving Suggestions
- [Accompaniments]
- [Plating suggestions]

Note: Focus on %s style and ensure total cooking time stays within %d minutes.`,
		prefs.Region, prefs.MealCategory, prefs.SubCategory,
		ingredients,
		prefs.CookingStyle, prefs.CookingTime, prefs.SpiceLevel,
		prefs.CookingStyle, prefs.CookingTime)
}
