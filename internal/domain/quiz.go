package domain

import "time"

type Question struct {
	Question      string       `json:"question" validate:"notblank"`
	Type          QuestionType `json:"type" validate:"oneof=multiple-choice true-false short-answer"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Points        int          `json:"points" validate:"min=1"`
}

type QuizMarketplace struct {
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	RatingCount int     `json:"ratingCount" validate:"gte=0"`
	Attempts    int     `json:"attempts" validate:"gte=0"`
}

type Quiz struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner"`
	Title       string          `json:"title" validate:"notblank"`
	Subject     string          `json:"subject"`
	Difficulty  Difficulty      `json:"difficulty" validate:"oneof=easy medium hard"`
	SourceNotes []string        `json:"sourceNotes"`
	Questions   []Question      `json:"questions" validate:"min=1,dive"`
	TotalPoints int             `json:"totalPoints"`
	TimeLimit   int             `json:"timeLimit" validate:"gte=0"`
	IsPublic    bool            `json:"isPublic"`
	Marketplace QuizMarketplace `json:"marketplace"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type NewQuiz struct {
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Difficulty  Difficulty `json:"difficulty"`
	SourceNotes []string   `json:"sourceNotes"`
	Questions   []Question `json:"questions"`
	TimeLimit   int        `json:"timeLimit"`
	IsPublic    bool       `json:"isPublic"`
}

type QuizPatch struct {
	Title       *string
	Subject     *string
	Difficulty  *Difficulty
	SourceNotes *[]string
	Questions   *[]Question
	TimeLimit   *int
	IsPublic    *bool
	Marketplace *QuizMarketplace
}

func NewQuizRecord(id, ownerID string, in NewQuiz, now time.Time) *Quiz {
	return &Quiz{
		ID:          id,
		OwnerID:     ownerID,
		Title:       in.Title,
		Subject:     in.Subject,
		Difficulty:  in.Difficulty,
		SourceNotes: append([]string{}, in.SourceNotes...),
		Questions:   cloneQuestions(in.Questions),
		TimeLimit:   in.TimeLimit,
		IsPublic:    in.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (q *Quiz) Apply(p QuizPatch) {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Subject != nil {
		q.Subject = *p.Subject
	}
	if p.Difficulty != nil {
		q.Difficulty = *p.Difficulty
	}
	if p.SourceNotes != nil {
		q.SourceNotes = append([]string{}, (*p.SourceNotes)...)
	}
	if p.Questions != nil {
		q.Questions = cloneQuestions(*p.Questions)
	}
	if p.TimeLimit != nil {
		q.TimeLimit = *p.TimeLimit
	}
	if p.IsPublic != nil {
		q.IsPublic = *p.IsPublic
	}
	if p.Marketplace != nil {
		q.Marketplace = *p.Marketplace
	}
}

// Prepare applies question defaults, recomputes TotalPoints and validates.
func (q *Quiz) Prepare() error {
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	q.SourceNotes = nonNil(q.SourceNotes)
	q.Questions = nonNil(q.Questions)
	total := 0
	for i := range q.Questions {
		qq := &q.Questions[i]
		if qq.Type == "" {
			qq.Type = QuestionMultipleChoice
		}
		if qq.Points == 0 {
			qq.Points = 1
		}
		qq.Options = nonNil(qq.Options)
		total += qq.Points
	}
	q.TotalPoints = total
	return Validate(q)
}

func cloneQuestions(in []Question) []Question {
	out := make([]Question, len(in))
	for i, q := range in {
		q.Options = append([]string{}, q.Options...)
		out[i] = q
	}
	return out
}
