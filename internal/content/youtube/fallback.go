package youtube

// builtinFallbackVideos is the static inventory served when the upstream API
// is unreachable or unconfigured. Operators can replace it via the fallback
// catalog folder.
func builtinFallbackVideos() []Video {
	return []Video{
		{
			ID:          "fallback_prog_1",
			Title:       "JavaScript for Beginners - Lesson 1",
			Description: "Learn JavaScript from scratch: variables, functions, and the fundamentals of web programming.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/FCMxA3m_Imc/default.jpg",
				Medium:  "https://i.ytimg.com/vi/FCMxA3m_Imc/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/FCMxA3m_Imc/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/FCMxA3m_Imc/maxresdefault.jpg",
			},
			VideoID:      "FCMxA3m_Imc",
			ChannelID:    "UC_prog_1",
			ChannelTitle: "Web Programming",
			PublishedAt:  "2024-01-01T00:00:00Z",
		},
		{
			ID:          "fallback_prog_2",
			Title:       "Python Tutorial - Data Structures",
			Description: "Master lists, dictionaries, and the essential data structures in Python.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/8DvywoWv6fI/default.jpg",
				Medium:  "https://i.ytimg.com/vi/8DvywoWv6fI/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/8DvywoWv6fI/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/8DvywoWv6fI/maxresdefault.jpg",
			},
			VideoID:      "8DvywoWv6fI",
			ChannelID:    "UC_prog_2",
			ChannelTitle: "Python Hub",
			PublishedAt:  "2024-01-05T00:00:00Z",
		},
		{
			ID:          "fallback_math_1",
			Title:       "Linear Algebra - Vectors and Matrices",
			Description: "Understand the fundamental concepts of vectors and matrix operations.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/lXfEK8G8CUI/default.jpg",
				Medium:  "https://i.ytimg.com/vi/lXfEK8G8CUI/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/lXfEK8G8CUI/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/lXfEK8G8CUI/maxresdefault.jpg",
			},
			VideoID:      "lXfEK8G8CUI",
			ChannelID:    "UC_math_1",
			ChannelTitle: "Simple Math",
			PublishedAt:  "2024-01-02T00:00:00Z",
		},
		{
			ID:          "fallback_math_2",
			Title:       "Differential Calculus - Derivatives",
			Description: "Learn limits, continuity, and derivatives in differential calculus.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/WUvTyaaNkzM/default.jpg",
				Medium:  "https://i.ytimg.com/vi/WUvTyaaNkzM/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/WUvTyaaNkzM/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/WUvTyaaNkzM/maxresdefault.jpg",
			},
			VideoID:      "WUvTyaaNkzM",
			ChannelID:    "UC_math_2",
			ChannelTitle: "Professor Calculus",
			PublishedAt:  "2024-01-08T00:00:00Z",
		},
		{
			ID:          "fallback_science_1",
			Title:       "Quantum Physics for Beginners",
			Description: "An accessible introduction to the fundamental concepts of quantum mechanics.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/ZM8ECpBuQYE/default.jpg",
				Medium:  "https://i.ytimg.com/vi/ZM8ECpBuQYE/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/ZM8ECpBuQYE/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/ZM8ECpBuQYE/maxresdefault.jpg",
			},
			VideoID:      "ZM8ECpBuQYE",
			ChannelID:    "UC_science_1",
			ChannelTitle: "Easy Science",
			PublishedAt:  "2024-01-03T00:00:00Z",
		},
		{
			ID:          "fallback_science_2",
			Title:       "Organic Chemistry - Hydrocarbons",
			Description: "Study carbon chains and the naming of organic compounds.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/J0ldO87Pprc/default.jpg",
				Medium:  "https://i.ytimg.com/vi/J0ldO87Pprc/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/J0ldO87Pprc/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/J0ldO87Pprc/maxresdefault.jpg",
			},
			VideoID:      "J0ldO87Pprc",
			ChannelID:    "UC_science_2",
			ChannelTitle: "Total Chemistry",
			PublishedAt:  "2024-01-06T00:00:00Z",
		},
		{
			ID:          "fallback_tech_1",
			Title:       "Artificial Intelligence - Machine Learning",
			Description: "An introduction to machine learning algorithms and neural networks.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/aircAruvnKk/default.jpg",
				Medium:  "https://i.ytimg.com/vi/aircAruvnKk/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/aircAruvnKk/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/aircAruvnKk/maxresdefault.jpg",
			},
			VideoID:      "aircAruvnKk",
			ChannelID:    "UC_tech_1",
			ChannelTitle: "AI Academy",
			PublishedAt:  "2024-01-04T00:00:00Z",
		},
		{
			ID:          "fallback_tech_2",
			Title:       "Sorting Algorithms - Bubble Sort",
			Description: "Understand how sorting algorithms work and their complexity.",
			Thumbnail: Thumbnail{
				Default: "https://i.ytimg.com/vi/kPRA0W1kECg/default.jpg",
				Medium:  "https://i.ytimg.com/vi/kPRA0W1kECg/mqdefault.jpg",
				High:    "https://i.ytimg.com/vi/kPRA0W1kECg/hqdefault.jpg",
				Maxres:  "https://i.ytimg.com/vi/kPRA0W1kECg/maxresdefault.jpg",
			},
			VideoID:      "kPRA0W1kECg",
			ChannelID:    "UC_tech_2",
			ChannelTitle: "Algorithms & Code",
			PublishedAt:  "2024-01-07T00:00:00Z",
		},
	}
}

// builtinPlaylists is the curated educational playlist set.
func builtinPlaylists() []Playlist {
	return []Playlist{
		{
			ID:               "PLkahwjBmgW4H32vjQzqpq7_kgdS8N4Ieb",
			Title:            "Khan Academy - Basic Algebra",
			Description:      "Complete basic algebra course with practice exercises",
			Thumbnail:        "https://i.ytimg.com/vi/lXfEK8G8CUI/maxresdefault.jpg",
			Category:         "mathematics",
			Difficulty:       "beginner",
			EstimatedMinutes: 480,
			VideoCount:       20,
			ChannelTitle:     "Khan Academy",
			Subject:          "Mathematics",
		},
		{
			ID:               "PLHz_AreHm4dkqe2aR0tQK74m8SFe9_hQ_",
			Title:            "Python Course for Beginners",
			Description:      "Complete Python course for first-time programmers",
			Thumbnail:        "https://i.ytimg.com/vi/S9uPNppGsGo/maxresdefault.jpg",
			Category:         "programming",
			Difficulty:       "beginner",
			EstimatedMinutes: 2400,
			VideoCount:       115,
			ChannelTitle:     "Course in Video",
			Subject:          "Programming",
		},
		{
			ID:               "PLvE-ZAFRgX8hnECDn1v9HNTI71veL3oW0",
			Title:            "Physics - Exam Preparation",
			Description:      "Physics lessons for college entrance exams",
			Thumbnail:        "https://i.ytimg.com/vi/ZM8ECpBuQYE/maxresdefault.jpg",
			Category:         "science",
			Difficulty:       "intermediate",
			EstimatedMinutes: 720,
			VideoCount:       45,
			ChannelTitle:     "Professor Ferreto",
			Subject:          "Physics",
		},
		{
			ID:               "PLcYGpOhCl1-2W6Q2TqXKJcVr5fy4h9ELv",
			Title:            "Introduction to Computer Science",
			Description:      "Fundamental concepts of computer science",
			Thumbnail:        "https://i.ytimg.com/vi/rL8X2mlNHPM/maxresdefault.jpg",
			Category:         "technology",
			Difficulty:       "intermediate",
			EstimatedMinutes: 960,
			VideoCount:       32,
			ChannelTitle:     "MIT OpenCourseWare",
			Subject:          "Computer Science",
		},
		{
			ID:               "PLmMhL7lH8amtRJJ6-pZgJ6LwI5OO_Hl5Y",
			Title:            "Organic Chemistry",
			Description:      "Complete organic chemistry course",
			Thumbnail:        "https://i.ytimg.com/vi/u9z6kPl0KXY/maxresdefault.jpg",
			Category:         "science",
			Difficulty:       "advanced",
			EstimatedMinutes: 600,
			VideoCount:       25,
			ChannelTitle:     "Chemistry with Prof. Valim",
			Subject:          "Chemistry",
		},
	}
}
