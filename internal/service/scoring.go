package service

import (
	"math"
	"strings"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// Aggregate weights reflect assumed hiring priorities: coding ability counts
// the most, resume-grounded technical depth next, behavioral the least.
const (
	WeightCoding     = 0.40
	WeightTechnical  = 0.35
	WeightBehavioral = 0.25
)

// MaxScore bounds every per-answer and aggregate score.
const MaxScore = 10

// HeuristicScore is the last-resort text score: roughly one point per ten
// words, clamped to [1, 10] for non-empty text and 0 otherwise. Length is a
// weak proxy for quality; it only stands in when the evaluator is down.
func HeuristicScore(text string) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	score := len(words) / 10
	if score < 1 {
		return 1
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// CategoryAverage is the truncated arithmetic mean, 0 for an empty list.
func CategoryAverage(scores []int) int {
	if len(scores) == 0 {
		return 0
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}
	return sum / len(scores)
}

// AggregateScores combines per-category scores into one weighted overall
// score, or 0 when no category has any scores.
func AggregateScores(technical, behavioral, coding []int) int {
	if len(technical) == 0 && len(behavioral) == 0 && len(coding) == 0 {
		return 0
	}

	techAvg := float64(CategoryAverage(technical))
	behAvg := float64(CategoryAverage(behavioral))
	codeAvg := float64(CategoryAverage(coding))

	return int(math.Round(WeightCoding*codeAvg + WeightTechnical*techAvg + WeightBehavioral*behAvg))
}

// GroupScoresByCategory partitions answer scores by the answered question's
// category. Resume questions count as technical; answers whose question is
// missing, or an intro, contribute to no bucket.
func GroupScoresByCategory(answers []models.Answer) (technical, behavioral, coding []int) {
	for _, answer := range answers {
		if answer.Question == nil || answer.Score == nil {
			continue
		}

		switch answer.Question.Category {
		case models.CategoryResume:
			technical = append(technical, *answer.Score)
		case models.CategoryBehavioral:
			behavioral = append(behavioral, *answer.Score)
		case models.CategoryCoding:
			coding = append(coding, *answer.Score)
		}
	}
	return technical, behavioral, coding
}

// SummaryScores is the display-oriented per-category breakdown used by the
// history views. Overall here is the unweighted mean of the three category
// averages, not the weighted end-of-interview aggregate.
type SummaryScores struct {
	Technical  int
	Behavioral int
	Coding     int
	Overall    int
}

// SummarizeAnswers computes the per-category breakdown for one interview.
func SummarizeAnswers(answers []models.Answer) SummaryScores {
	technical, behavioral, coding := GroupScoresByCategory(answers)

	scores := SummaryScores{
		Technical:  CategoryAverage(technical),
		Behavioral: CategoryAverage(behavioral),
		Coding:     CategoryAverage(coding),
	}
	scores.Overall = (scores.Technical + scores.Behavioral + scores.Coding) / 3

	return scores
}
