// Package grading scores quiz attempts against a quiz's answer key.
package grading

import "github.com/yungbote/studynotes-backend/internal/domain"

type Result struct {
	Score       int             `json:"score"`
	TotalPoints int             `json:"totalPoints"`
	Percentage  float64         `json:"percentage"`
	Answers     []domain.Answer `json:"answers"`
}

// Grade compares submitted[i] with question i's correct answer by exact
// string equality. Answers past the last question are kept but earn nothing.
func Grade(quiz *domain.Quiz, submitted []string) Result {
	answers := make([]domain.Answer, len(submitted))
	score := 0
	for i, ans := range submitted {
		a := domain.Answer{QuestionIndex: i, Answer: ans}
		if i < len(quiz.Questions) {
			q := quiz.Questions[i]
			if ans == q.CorrectAnswer {
				a.IsCorrect = true
				a.PointsEarned = q.Points
			}
		}
		score += a.PointsEarned
		answers[i] = a
	}
	return Result{
		Score:       score,
		TotalPoints: quiz.TotalPoints,
		Percentage:  domain.Percentage(score, quiz.TotalPoints),
		Answers:     answers,
	}
}
