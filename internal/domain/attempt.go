package domain

import "time"

type Answer struct {
	QuestionIndex int    `json:"questionIndex" validate:"gte=0"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"isCorrect"`
	PointsEarned  int    `json:"pointsEarned"`
}

type QuizAttempt struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	QuizID      string    `json:"quiz" validate:"notblank"`
	Answers     []Answer  `json:"answers" validate:"dive"`
	Score       int       `json:"score" validate:"gte=0"`
	TotalPoints int       `json:"totalPoints" validate:"gte=0"`
	Percentage  float64   `json:"percentage"`
	TimeSpent   int       `json:"timeSpent" validate:"gte=0"`
	CompletedAt time.Time `json:"completedAt"`
}

type NewQuizAttempt struct {
	QuizID      string
	Answers     []Answer
	Score       int
	TotalPoints int
	TimeSpent   int
}

type QuizAttemptPatch struct {
	Answers   *[]Answer
	Score     *int
	TimeSpent *int
}

func NewQuizAttemptRecord(id, ownerID string, in NewQuizAttempt, now time.Time) *QuizAttempt {
	return &QuizAttempt{
		ID:          id,
		OwnerID:     ownerID,
		QuizID:      in.QuizID,
		Answers:     append([]Answer{}, in.Answers...),
		Score:       in.Score,
		TotalPoints: in.TotalPoints,
		TimeSpent:   in.TimeSpent,
		CompletedAt: now,
	}
}

func (a *QuizAttempt) Apply(p QuizAttemptPatch) {
	if p.Answers != nil {
		a.Answers = append([]Answer{}, (*p.Answers)...)
	}
	if p.Score != nil {
		a.Score = *p.Score
	}
	if p.TimeSpent != nil {
		a.TimeSpent = *p.TimeSpent
	}
}

func (a *QuizAttempt) Prepare() error {
	a.Answers = nonNil(a.Answers)
	a.Percentage = Percentage(a.Score, a.TotalPoints)
	return Validate(a)
}
