package domain

import "fmt"

// SeedCourses returns the built-in catalog. Course ids are stable so
// progress records keep pointing at the right course across reseeds.
func SeedCourses() []Course {
	return []Course{
		{
			ID:          "course_quantum_physics_101",
			Slug:        "quantum-physics-101",
			Title:       "Quantum Physics 101",
			Category:    "Science",
			Duration:    "12 Weeks",
			Difficulty:  "Hard",
			Students:    "12k",
			Description: "An introduction to quantum mechanics: wave functions, superposition, and measurement.",
			Lessons:     numberedLessons("course_quantum_physics_101", 12),
		},
		{
			ID:          "course_modern_art_history",
			Slug:        "modern-art-history",
			Title:       "Modern Art History",
			Category:    "Arts",
			Duration:    "6 Weeks",
			Difficulty:  "Easy",
			Students:    "5k",
			Description: "From impressionism to abstract expressionism: the movements that shaped modern art.",
			Lessons:     numberedLessons("course_modern_art_history", 8),
		},
		{
			ID:          "course_algorithm_design",
			Slug:        "algorithm-design",
			Title:       "Algorithm Design",
			Category:    "Engineering",
			Duration:    "10 Weeks",
			Difficulty:  "Medium",
			Students:    "8k",
			Description: "Divide and conquer, dynamic programming, and greedy strategies with worked examples.",
			Lessons:     numberedLessons("course_algorithm_design", 10),
		},
		{
			ID:          "course_psychology_101",
			Slug:        "psychology-101",
			Title:       "Psychology 101",
			Category:    "Science",
			Duration:    "8 Weeks",
			Difficulty:  "Easy",
			Students:    "9k",
			Description: "Foundations of psychology: motivation, memory, and the structures of the brain.",
			Lessons:     numberedLessons("course_psychology_101", 8),
			Questions: []Question{
				{
					Text:         "Which psychologist is best known for developing the hierarchy of needs?",
					Options:      []string{"Sigmund Freud", "B.F. Skinner", "Abraham Maslow", "Carl Jung"},
					CorrectIndex: 2,
					Explanation:  "Maslow's hierarchy of needs is a motivational theory comprising a five-tier model of human needs.",
				},
				{
					Text:         "What is the primary function of the hippocampus?",
					Options:      []string{"Motor Control", "Memory Formation", "Visual Processing", "Heart Rate"},
					CorrectIndex: 1,
					Explanation:  "The hippocampus is a major component of the brain and plays a critical role in memory consolidation.",
				},
			},
		},
	}
}

func numberedLessons(courseID string, count int) []Lesson {
	lessons := make([]Lesson, 0, count)
	for i := 1; i <= count; i++ {
		lessons = append(lessons, Lesson{
			ID:       fmt.Sprintf("%s_lesson_%d", courseID, i),
			Title:    fmt.Sprintf("Lesson %d", i),
			Duration: 600,
		})
	}
	return lessons
}
