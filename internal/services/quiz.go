package services

import (
	"context"
	"strings"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/learning/grading"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

const (
	DefaultGeneratedQuizTitle = "AI-Generated Quiz"
	defaultGeneratedCount     = 10
	minutesPerQuestion        = 2
)

var placeholderOptions = []string{
	"Option A (Generated)",
	"Option B (Generated)",
	"Option C (Generated)",
	"Option D (Generated)",
}

type GenerateQuizInput struct {
	NoteIDs       []string `json:"noteIds"`
	Title         string   `json:"title"`
	QuestionCount int      `json:"questionCount"`
	Difficulty    string   `json:"difficulty"`
}

type SubmitAttemptInput struct {
	Answers   []string
	TimeSpent int
}

type AttemptResult struct {
	AttemptID string `json:"attemptId"`
	grading.Result
}

type QuizService interface {
	Create(ctx context.Context, userID string, in domain.NewQuiz) (*domain.Quiz, error)
	// GenerateFromNotes builds a quiz from the caller's notes via the AI gateway.
	GenerateFromNotes(ctx context.Context, userID string, in GenerateQuizInput) (*domain.Quiz, error)
	List(ctx context.Context, userID string, f repos.QuizFilter) ([]*domain.Quiz, error)
	Get(ctx context.Context, userID, id string) (*domain.Quiz, error)
	Share(ctx context.Context, userID, id string, public bool) (*domain.Quiz, error)
	ListPublic(ctx context.Context, f repos.QuizFilter) ([]*domain.Quiz, error)
	// SubmitAttempt grades answers for a quiz the caller owns or that is public.
	SubmitAttempt(ctx context.Context, userID, quizID string, in SubmitAttemptInput) (*AttemptResult, error)
	Attempts(ctx context.Context, userID string, f repos.AttemptFilter) ([]*domain.QuizAttempt, error)
}

type quizService struct {
	log      *logger.Logger
	notes    repos.NoteRepo
	quizzes  repos.QuizRepo
	attempts repos.QuizAttemptRepo
	ai       *ai.Gateway
}

func NewQuizService(log *logger.Logger, notes repos.NoteRepo, quizzes repos.QuizRepo, attempts repos.QuizAttemptRepo, gateway *ai.Gateway) QuizService {
	return &quizService{
		log:      log.With("service", "QuizService"),
		notes:    notes,
		quizzes:  quizzes,
		attempts: attempts,
		ai:       gateway,
	}
}

func (s *quizService) Create(ctx context.Context, userID string, in domain.NewQuiz) (*domain.Quiz, error) {
	return s.quizzes.Create(ctx, userID, in)
}

func (s *quizService) GenerateFromNotes(ctx context.Context, userID string, in GenerateQuizInput) (*domain.Quiz, error) {
	if len(in.NoteIDs) == 0 {
		return nil, apierr.Validation("noteIds is required")
	}
	var notes []*domain.Note
	for _, id := range in.NoteIDs {
		n, err := s.notes.FindByID(ctx, id, userID)
		if apierr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		return nil, apierr.NotFound("notes")
	}

	contents := make([]string, len(notes))
	for i, n := range notes {
		contents[i] = n.Content
	}
	count := in.QuestionCount
	if count <= 0 {
		count = defaultGeneratedCount
	}
	count = ai.NormalizeCount(count)
	difficulty := domain.ParseDifficulty(in.Difficulty)

	generated := s.ai.GenerateQuestions(ctx, strings.Join(contents, "\n\n"), count, string(difficulty))
	questions := make([]domain.Question, len(generated))
	for i, g := range generated {
		questions[i] = domain.Question{
			Question:      g.Question,
			Type:          domain.QuestionMultipleChoice,
			Options:       append([]string{}, placeholderOptions...),
			CorrectAnswer: placeholderOptions[0],
			Explanation:   "Review the related notes for details",
			Points:        1,
		}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultGeneratedQuizTitle
	}
	sourceIDs := make([]string, len(notes))
	for i, n := range notes {
		sourceIDs[i] = n.ID
	}
	return s.quizzes.Create(ctx, userID, domain.NewQuiz{
		Title:       title,
		Subject:     notes[0].Subject,
		Difficulty:  difficulty,
		SourceNotes: sourceIDs,
		Questions:   questions,
		TimeLimit:   len(questions) * minutesPerQuestion,
	})
}

func (s *quizService) List(ctx context.Context, userID string, f repos.QuizFilter) ([]*domain.Quiz, error) {
	quizzes, err := s.quizzes.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return withoutQuestions(quizzes), nil
}

func (s *quizService) Get(ctx context.Context, userID, id string) (*domain.Quiz, error) {
	return s.quizzes.FindByID(ctx, id, userID)
}

func (s *quizService) Share(ctx context.Context, userID, id string, public bool) (*domain.Quiz, error) {
	return s.quizzes.Update(ctx, id, userID, domain.QuizPatch{IsPublic: &public})
}

func (s *quizService) ListPublic(ctx context.Context, f repos.QuizFilter) ([]*domain.Quiz, error) {
	quizzes, err := s.quizzes.ListPublic(ctx, f)
	if err != nil {
		return nil, err
	}
	return withoutQuestions(quizzes), nil
}

func (s *quizService) SubmitAttempt(ctx context.Context, userID, quizID string, in SubmitAttemptInput) (*AttemptResult, error) {
	if in.TimeSpent < 0 {
		return nil, apierr.Validation("timeSpent must be at least 0")
	}
	q, err := s.quizzes.FindByID(ctx, quizID, "")
	if err != nil {
		return nil, err
	}
	if q.OwnerID != userID && !q.IsPublic {
		return nil, apierr.NotFound("quiz")
	}

	result := grading.Grade(q, in.Answers)
	attempt, err := s.attempts.Create(ctx, userID, domain.NewQuizAttempt{
		QuizID:      q.ID,
		Answers:     result.Answers,
		Score:       result.Score,
		TotalPoints: result.TotalPoints,
		TimeSpent:   in.TimeSpent,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.quizzes.RecordAttempt(ctx, q.ID); err != nil {
		// The attempt is already stored; the counter is best effort.
		s.log.Warn("record quiz attempt failed", "quiz_id", q.ID, "error", err)
	}
	result.Percentage = attempt.Percentage
	return &AttemptResult{AttemptID: attempt.ID, Result: result}, nil
}

func (s *quizService) Attempts(ctx context.Context, userID string, f repos.AttemptFilter) ([]*domain.QuizAttempt, error) {
	return s.attempts.List(ctx, userID, f)
}

func withoutQuestions(quizzes []*domain.Quiz) []*domain.Quiz {
	for _, q := range quizzes {
		q.Questions = []domain.Question{}
	}
	return quizzes
}
