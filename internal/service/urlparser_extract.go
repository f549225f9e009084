package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Type-specific field extraction for parsed pages. Recipes yield
// (ingredients, cook time); workouts yield (duration, difficulty).

var (
	jsonLdPattern = regexp.MustCompile(`(?is)<script[^>]*type="application/ld\+json"[^>]*>(.*?)</script>`)

	ingredientListPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<ul[^>]*class="[^"]*ingredient[^"]*"[^>]*>(.*?)</ul>`),
		regexp.MustCompile(`(?is)<div[^>]*class="[^"]*ingredient[^"]*"[^>]*>(.*?)</div>`),
	}
	listItemPattern = regexp.MustCompile(`(?i)<li[^>]*>([^<]+)</li>`)
	tagPattern      = regexp.MustCompile(`<[^>]+>`)

	cookTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:cook|total|prep)\s*time[:\s]*(\d+\s*(?:hours?|hrs?|minutes?|mins?))`),
		regexp.MustCompile(`(?i)(\d+\s*(?:hours?|hrs?)(?:\s*\d+\s*(?:minutes?|mins?))?)`),
	}

	durationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)duration[:\s]*(\d+\s*(?:minutes?|mins?|hours?|hrs?))`),
		regexp.MustCompile(`(?i)(\d+\s*(?:minute|min|hour|hr)\s*workout)`),
		regexp.MustCompile(`(?i)length[:\s]*(\d+\s*(?:minutes?|mins?))`),
	}
	difficultyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)difficulty[:\s]*(beginner|intermediate|advanced|easy|moderate|hard)`),
		regexp.MustCompile(`(?i)level[:\s]*(beginner|intermediate|advanced|easy|moderate|hard)`),
		regexp.MustCompile(`(?i)(beginner|intermediate|advanced)\s*workout`),
	}

	isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)
)

type jsonLdRecipe struct {
	Type             string   `json:"@type"`
	RecipeIngredient []string `json:"recipeIngredient"`
	TotalTime        string   `json:"totalTime"`
	CookTime         string   `json:"cookTime"`
	PrepTime         string   `json:"prepTime"`
}

func extractRecipeFields(page string) (ingredients, cookTime string) {
	if recipe := findJSONLdRecipe(page); recipe != nil {
		ingredients = summarizeList(recipe.RecipeIngredient)
		switch {
		case recipe.TotalTime != "":
			cookTime = humanDuration(recipe.TotalTime)
		case recipe.CookTime != "" && recipe.PrepTime != "":
			cookTime = humanDuration(recipe.PrepTime) + " prep + " + humanDuration(recipe.CookTime) + " cook"
		case recipe.CookTime != "":
			cookTime = humanDuration(recipe.CookTime)
		}
	}

	if ingredients == "" {
		for _, pattern := range ingredientListPatterns {
			m := pattern.FindStringSubmatch(page)
			if m == nil {
				continue
			}
			var items []string
			for _, li := range listItemPattern.FindAllStringSubmatch(m[1], -1) {
				item := strings.TrimSpace(tagPattern.ReplaceAllString(li[1], ""))
				if item != "" {
					items = append(items, item)
				}
			}
			if len(items) > 0 {
				ingredients = summarizeList(items)
				break
			}
		}
	}

	if cookTime == "" {
		for _, pattern := range cookTimePatterns {
			if m := pattern.FindStringSubmatch(page); m != nil {
				cookTime = m[1]
				break
			}
		}
	}

	if ingredients == "" {
		ingredients = "See recipe for ingredients"
	}
	if cookTime == "" {
		cookTime = "See recipe for time"
	}
	return ingredients, cookTime
}

func extractWorkoutFields(page string) (duration, difficulty string) {
	for _, pattern := range durationPatterns {
		if m := pattern.FindStringSubmatch(page); m != nil {
			duration = strings.Join(strings.Fields(m[1]), " ")
			break
		}
	}
	for _, pattern := range difficultyPatterns {
		if m := pattern.FindStringSubmatch(page); m != nil {
			difficulty = strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
			break
		}
	}

	if duration == "" {
		duration = "30 minutes"
	}
	if difficulty == "" {
		difficulty = "Intermediate"
	}
	return duration, difficulty
}

func findJSONLdRecipe(page string) *jsonLdRecipe {
	m := jsonLdPattern.FindStringSubmatch(page)
	if m == nil {
		return nil
	}

	var single jsonLdRecipe
	if err := json.Unmarshal([]byte(m[1]), &single); err == nil && single.Type == "Recipe" {
		return &single
	}

	var many []jsonLdRecipe
	if err := json.Unmarshal([]byte(m[1]), &many); err == nil {
		for i := range many {
			if many[i].Type == "Recipe" {
				return &many[i]
			}
		}
	}
	return nil
}

// summarizeList keeps the first five entries and counts the rest.
func summarizeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	head := items
	if len(items) > 5 {
		head = items[:5]
	}
	out := strings.Join(head, ", ")
	if len(items) > 5 {
		out += fmt.Sprintf(" (+%d more)", len(items)-5)
	}
	return out
}

// humanDuration renders an ISO 8601 duration like PT1H30M as "1h 30m".
func humanDuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}
	var parts []string
	if m[1] != "" {
		parts = append(parts, m[1]+"h")
	}
	if m[2] != "" {
		parts = append(parts, m[2]+"m")
	}
	if len(parts) == 0 {
		return iso
	}
	return strings.Join(parts, " ")
}
