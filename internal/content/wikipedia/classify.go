package wikipedia

import (
	"math"
	"strings"
)

// Difficulty is the coarse classification attached to every article.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Indicator vocabularies for the heuristic difficulty estimate. Each word
// counts once regardless of how often it appears.
var (
	advancedWords = []string{"advanced", "complex", "sophisticated", "theorem", "algorithm"}
	basicWords    = []string{"basic", "simple", "introduction", "fundamental", "elementary"}
)

// EstimateDifficulty scans the extract for advanced and basic indicator
// words. More advanced hits means hard, more basic hits means easy, a tie
// (including no hits at all) means medium.
func EstimateDifficulty(text string) Difficulty {
	lower := strings.ToLower(text)
	advanced := countMatches(lower, advancedWords)
	basic := countMatches(lower, basicWords)

	switch {
	case advanced > basic:
		return DifficultyHard
	case basic > advanced:
		return DifficultyEasy
	default:
		return DifficultyMedium
	}
}

func countMatches(lowerText string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(lowerText, word) {
			count++
		}
	}
	return count
}

const wordsPerMinute = 200

// EstimateReadingTime returns the reading time in whole minutes, rounding up.
func EstimateReadingTime(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// categoryKeywords maps coarse categories to the title keywords that select
// them. First match wins in the order below; no match lands in general.
var categoryOrder = []string{"mathematics", "programming", "science", "technology"}

var categoryKeywords = map[string][]string{
	"mathematics": {"math", "algebra", "calculus", "geometry"},
	"programming": {"program", "algorithm", "software", "code"},
	"science":     {"physics", "chemistry", "biology"},
	"technology":  {"computer", "technology", "ai", "machine learning"},
}

// CategorizeTitle buckets an article by its title keywords.
func CategorizeTitle(title string) string {
	lower := strings.ToLower(title)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return "general"
}
