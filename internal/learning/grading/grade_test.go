package grading

import (
	"testing"

	"github.com/yungbote/studynotes-backend/internal/domain"
)

func quiz(t *testing.T, qs ...domain.Question) *domain.Quiz {
	t.Helper()
	q := &domain.Quiz{Title: "Q", Questions: qs}
	if err := q.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return q
}

func TestGradeAllCorrect(t *testing.T) {
	q := quiz(t,
		domain.Question{Question: "2+2?", CorrectAnswer: "4", Points: 2},
		domain.Question{Question: "Sky?", CorrectAnswer: "blue"},
	)
	r := Grade(q, []string{"4", "blue"})
	if r.Score != 3 || r.TotalPoints != 3 || r.Percentage != 100 {
		t.Fatalf("Grade: got %+v", r)
	}
	for i, a := range r.Answers {
		if !a.IsCorrect || a.QuestionIndex != i {
			t.Fatalf("answer %d: got %+v", i, a)
		}
	}
}

func TestGradePartial(t *testing.T) {
	q := quiz(t,
		domain.Question{Question: "a?", CorrectAnswer: "A", Points: 1},
		domain.Question{Question: "b?", CorrectAnswer: "B", Points: 3},
	)
	r := Grade(q, []string{"A", "b"})
	if r.Score != 1 || r.Percentage != 25 {
		t.Fatalf("Grade: got %+v", r)
	}
	if r.Answers[1].IsCorrect || r.Answers[1].PointsEarned != 0 {
		t.Fatalf("case-sensitive match expected: got %+v", r.Answers[1])
	}
}

func TestGradeExtraAnswersEarnNothing(t *testing.T) {
	q := quiz(t, domain.Question{Question: "a?", CorrectAnswer: "A"})
	r := Grade(q, []string{"A", "A", ""})
	if r.Score != 1 || len(r.Answers) != 3 {
		t.Fatalf("Grade: got %+v", r)
	}
	if r.Answers[1].IsCorrect || r.Answers[2].PointsEarned != 0 {
		t.Fatalf("out of range answers: got %+v", r.Answers)
	}
}

func TestGradeZeroTotal(t *testing.T) {
	q := &domain.Quiz{}
	r := Grade(q, []string{"x"})
	if r.Score != 0 || r.Percentage != 0 {
		t.Fatalf("Grade: got %+v", r)
	}
}

func TestGradeNoAnswers(t *testing.T) {
	q := quiz(t, domain.Question{Question: "a?", CorrectAnswer: "A"})
	r := Grade(q, nil)
	if r.Score != 0 || r.TotalPoints != 1 || r.Percentage != 0 || len(r.Answers) != 0 {
		t.Fatalf("Grade: got %+v", r)
	}
}
