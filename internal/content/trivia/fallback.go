package trivia

// builtinFallbackCategories covers the categories the study tracks link to,
// so category pickers stay usable when the upstream directory is down.
func builtinFallbackCategories() []Category {
	return []Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 18, Name: "Science: Computers"},
		{ID: 19, Name: "Science: Mathematics"},
		{ID: 21, Name: "Sports"},
		{ID: 22, Name: "Geography"},
		{ID: 23, Name: "History"},
		{ID: 27, Name: "Animals"},
	}
}

func builtinFallbackQuestions() []Question {
	return []Question{
		{
			Category:      "Science: Mathematics",
			Type:          "multiple",
			Difficulty:    "easy",
			Question:      "What is 2 + 2?",
			CorrectAnswer: "4",
			IncorrectAnswers: []string{
				"3",
				"5",
				"6",
			},
		},
		{
			Category:      "Science: Computers",
			Type:          "multiple",
			Difficulty:    "medium",
			Question:      "Which data structure works on a last-in, first-out basis?",
			CorrectAnswer: "Stack",
			IncorrectAnswers: []string{
				"Queue",
				"Linked list",
				"Binary tree",
			},
		},
	}
}
