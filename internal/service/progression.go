package service

import "github.com/noah-isme/interviewai-go-api/internal/models"

// CategoryForStep maps the number of questions already asked onto the
// category the interview should move to next: a single introduction, two
// resume deep-dives, two behavioral questions, then coding for the rest.
func CategoryForStep(step int) string {
	switch {
	case step <= 0:
		return models.CategoryIntro
	case step <= 2:
		return models.CategoryResume
	case step <= 4:
		return models.CategoryBehavioral
	default:
		return models.CategoryCoding
	}
}

// fallbackPrompts are the canonical questions used whenever the generation
// delegate is unavailable or returns something unusable.
var fallbackPrompts = map[string]string{
	models.CategoryIntro:      "Tell me about yourself.",
	models.CategoryResume:     "Can you describe a project from your resume that you are proud of?",
	models.CategoryBehavioral: "Tell me about a time you resolved a conflict at work.",
	models.CategoryCoding:     "Implement a function to reverse a string and explain its complexity.",
}
