package wikipedia

import "time"

// builtinFallbackArticles is the static inventory served when the search API
// is unreachable.
func builtinFallbackArticles() []Article {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Article{
		{
			ID:             "fallback_1",
			Title:          "Introduction to Programming",
			Summary:        "Programming is the process of creating a set of instructions that tell a computer how to perform a task. It involves writing code in various programming languages.",
			URL:            "https://en.wikipedia.org/wiki/Computer_programming",
			Category:       "programming",
			Difficulty:     DifficultyEasy,
			ReadingMinutes: 5,
			Source:         "wikipedia",
			CreatedAt:      now,
			Language:       "en",
		},
		{
			ID:             "fallback_2",
			Title:          "Linear Algebra",
			Summary:        "Linear algebra is the branch of mathematics concerning linear equations, linear maps, and their representations in vector spaces and through matrices.",
			URL:            "https://en.wikipedia.org/wiki/Linear_algebra",
			Category:       "mathematics",
			Difficulty:     DifficultyMedium,
			ReadingMinutes: 8,
			Source:         "wikipedia",
			CreatedAt:      now,
			Language:       "en",
		},
		{
			ID:             "fallback_3",
			Title:          "Artificial Intelligence",
			Summary:        "Artificial intelligence is intelligence demonstrated by machines, in contrast to the natural intelligence displayed by humans and animals.",
			URL:            "https://en.wikipedia.org/wiki/Artificial_intelligence",
			Category:       "technology",
			Difficulty:     DifficultyHard,
			ReadingMinutes: 12,
			Source:         "wikipedia",
			CreatedAt:      now,
			Language:       "en",
		},
	}
}
