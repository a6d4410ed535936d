package services

import (
	"context"
	"strings"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type RatingResult struct {
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

type NoteService interface {
	Create(ctx context.Context, userID string, in domain.NewNote) (*domain.Note, error)
	List(ctx context.Context, userID string, f repos.NoteFilter) ([]*domain.Note, error)
	Get(ctx context.Context, userID, id string) (*domain.Note, error)
	Update(ctx context.Context, userID, id string, patch domain.NotePatch) (*domain.Note, error)
	Delete(ctx context.Context, userID, id string) error

	// Summarize stores the summary on the note and returns it.
	Summarize(ctx context.Context, userID, id string) (string, error)
	// GenerateQuestions replaces the note's generated questions.
	GenerateQuestions(ctx context.Context, userID, id string, count int, difficulty string) ([]domain.GeneratedQuestion, error)
	ExplainConcept(ctx context.Context, userID, id, concept string) (string, error)

	Share(ctx context.Context, userID, id string, public bool) (*domain.Note, error)
	ListPublic(ctx context.Context, f repos.NoteFilter) ([]*domain.Note, error)
	Rate(ctx context.Context, id string, rating int) (*RatingResult, error)
}

type noteService struct {
	log   *logger.Logger
	notes repos.NoteRepo
	ai    *ai.Gateway
}

func NewNoteService(log *logger.Logger, notes repos.NoteRepo, gateway *ai.Gateway) NoteService {
	return &noteService{
		log:   log.With("service", "NoteService"),
		notes: notes,
		ai:    gateway,
	}
}

func (s *noteService) Create(ctx context.Context, userID string, in domain.NewNote) (*domain.Note, error) {
	return s.notes.Create(ctx, userID, in)
}

// List omits generated questions and concepts, which only the detail view needs.
func (s *noteService) List(ctx context.Context, userID string, f repos.NoteFilter) ([]*domain.Note, error) {
	notes, err := s.notes.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		n.AIGenerated.Questions = []domain.GeneratedQuestion{}
		n.AIGenerated.Concepts = []domain.Concept{}
	}
	return notes, nil
}

func (s *noteService) Get(ctx context.Context, userID, id string) (*domain.Note, error) {
	return s.notes.FindByID(ctx, id, userID)
}

func (s *noteService) Update(ctx context.Context, userID, id string, patch domain.NotePatch) (*domain.Note, error) {
	return s.notes.Update(ctx, id, userID, patch)
}

func (s *noteService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.notes.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("note")
	}
	return nil
}

func (s *noteService) Summarize(ctx context.Context, userID, id string) (string, error) {
	n, err := s.notes.FindByID(ctx, id, userID)
	if err != nil {
		return "", err
	}
	summary := s.ai.Summarize(ctx, n.Content)
	gen := n.AIGenerated
	gen.Summary = summary
	if _, err := s.notes.Update(ctx, id, userID, domain.NotePatch{AIGenerated: &gen}); err != nil {
		return "", err
	}
	return summary, nil
}

func (s *noteService) GenerateQuestions(ctx context.Context, userID, id string, count int, difficulty string) ([]domain.GeneratedQuestion, error) {
	n, err := s.notes.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	questions := s.ai.GenerateQuestions(ctx, n.Content, count, difficulty)
	gen := n.AIGenerated
	gen.Questions = questions
	if _, err := s.notes.Update(ctx, id, userID, domain.NotePatch{AIGenerated: &gen}); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *noteService) ExplainConcept(ctx context.Context, userID, id, concept string) (string, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return "", apierr.Validation("concept is required")
	}
	n, err := s.notes.FindByID(ctx, id, userID)
	if err != nil {
		return "", err
	}
	return s.ai.ExplainConcept(ctx, concept, n.Content), nil
}

func (s *noteService) Share(ctx context.Context, userID, id string, public bool) (*domain.Note, error) {
	n, err := s.notes.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	m := n.Marketplace
	m.IsPublic = public
	return s.notes.Update(ctx, id, userID, domain.NotePatch{Marketplace: &m})
}

// ListPublic returns marketplace listings; content and generated material stay private.
func (s *noteService) ListPublic(ctx context.Context, f repos.NoteFilter) ([]*domain.Note, error) {
	notes, err := s.notes.ListPublic(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		n.Content = ""
		n.AIGenerated = domain.AIGenerated{
			KeyPoints: []string{},
			Questions: []domain.GeneratedQuestion{},
			Concepts:  []domain.Concept{},
		}
	}
	return notes, nil
}

func (s *noteService) Rate(ctx context.Context, id string, rating int) (*RatingResult, error) {
	if rating < 1 || rating > 5 {
		return nil, apierr.Validation("rating must be between 1 and 5")
	}
	n, err := s.notes.Rate(ctx, id, rating)
	if err != nil {
		return nil, err
	}
	return &RatingResult{AverageRating: n.Marketplace.Rating, RatingCount: n.Marketplace.RatingCount}, nil
}
