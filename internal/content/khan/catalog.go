package khan

// builtinTopics enumerates the study subjects the bundled catalog covers.
// Video counts are recomputed from the catalog at startup.
func builtinTopics() []Topic {
	return []Topic{
		{
			Slug:        "math-basics",
			Title:       "Math Basics",
			Description: "Arithmetic, fractions, and the foundations of algebra.",
			Icon:        "calculator",
		},
		{
			Slug:        "programming",
			Title:       "Programming",
			Description: "Learn to write and reason about code, from first steps to algorithms.",
			Icon:        "code",
		},
		{
			Slug:        "physics",
			Title:       "Physics",
			Description: "Motion, forces, and energy explained from first principles.",
			Icon:        "atom",
		},
		{
			Slug:        "biology",
			Title:       "Biology",
			Description: "Cells, genetics, and the systems of living things.",
			Icon:        "leaf",
		},
		{
			Slug:        "chemistry",
			Title:       "Chemistry",
			Description: "Atoms, bonds, and reactions that shape the material world.",
			Icon:        "flask",
		},
	}
}

func builtinVideos() []Video {
	return []Video{
		{
			ID:          "khan-math-001",
			Title:       "Introduction to Fractions",
			Description: "What fractions are and how to picture them on a number line.",
			YoutubeID:   "kn-lpVzkEYc",
			Duration:    512,
			TopicSlug:   "math-basics",
			DomainSlug:  "math",
			SubjectSlug: "arithmetic",
		},
		{
			ID:          "khan-math-002",
			Title:       "Adding and Subtracting Negative Numbers",
			Description: "Working with numbers below zero without losing track of the sign.",
			YoutubeID:   "C38B33ZywWs",
			Duration:    486,
			TopicSlug:   "math-basics",
			DomainSlug:  "math",
			SubjectSlug: "arithmetic",
		},
		{
			ID:          "khan-math-003",
			Title:       "Introduction to Algebra",
			Description: "Why variables exist and how equations express relationships.",
			YoutubeID:   "NybHckSEQBI",
			Duration:    674,
			TopicSlug:   "math-basics",
			DomainSlug:  "math",
			SubjectSlug: "algebra",
		},
		{
			ID:          "khan-prog-001",
			Title:       "What Is Programming?",
			Description: "How instructions become programs and what programmers actually do.",
			YoutubeID:   "FCMxA3m_Imc",
			Duration:    198,
			TopicSlug:   "programming",
			DomainSlug:  "computing",
			SubjectSlug: "computer-programming",
		},
		{
			ID:          "khan-prog-002",
			Title:       "Intro to Variables",
			Description: "Storing values, naming them, and changing them over time.",
			YoutubeID:   "dkqUM20hbWo",
			Duration:    310,
			TopicSlug:   "programming",
			DomainSlug:  "computing",
			SubjectSlug: "computer-programming",
		},
		{
			ID:          "khan-prog-003",
			Title:       "Intro to Algorithms",
			Description: "What an algorithm is and why some are faster than others.",
			YoutubeID:   "CvSOaYi89B4",
			Duration:    289,
			TopicSlug:   "programming",
			DomainSlug:  "computing",
			SubjectSlug: "computer-science",
		},
		{
			ID:          "khan-phys-001",
			Title:       "Newton's First Law of Motion",
			Description: "Inertia and what it takes to change an object's motion.",
			YoutubeID:   "CQYELiTtUs8",
			Duration:    545,
			TopicSlug:   "physics",
			DomainSlug:  "science",
			SubjectSlug: "physics",
		},
		{
			ID:          "khan-phys-002",
			Title:       "Introduction to Gravity",
			Description: "Why things fall and how gravity shapes orbits.",
			YoutubeID:   "Xcel_5ZMSsM",
			Duration:    612,
			TopicSlug:   "physics",
			DomainSlug:  "science",
			SubjectSlug: "physics",
		},
		{
			ID:          "khan-bio-001",
			Title:       "Introduction to Cells",
			Description: "The building blocks of life and what happens inside them.",
			YoutubeID:   "gFuEo2ccTPA",
			Duration:    566,
			TopicSlug:   "biology",
			DomainSlug:  "science",
			SubjectSlug: "biology",
		},
		{
			ID:          "khan-bio-002",
			Title:       "DNA Structure and Replication",
			Description: "How genetic information is stored and copied.",
			YoutubeID:   "8kK2zwjRV0M",
			Duration:    701,
			TopicSlug:   "biology",
			DomainSlug:  "science",
			SubjectSlug: "biology",
		},
		{
			ID:          "khan-chem-001",
			Title:       "Introduction to the Atom",
			Description: "Protons, neutrons, electrons, and how they define the elements.",
			YoutubeID:   "1xSQlwWGT8M",
			Duration:    638,
			TopicSlug:   "chemistry",
			DomainSlug:  "science",
			SubjectSlug: "chemistry",
		},
		{
			ID:          "khan-chem-002",
			Title:       "Chemical Bonds",
			Description: "Ionic and covalent bonding explained with simple molecules.",
			YoutubeID:   "CGA8sRwqIFg",
			Duration:    589,
			TopicSlug:   "chemistry",
			DomainSlug:  "science",
			SubjectSlug: "chemistry",
		},
	}
}
