// Package repos declares the persistence contract shared by the memory and
// gorm backends, plus the filtering, ordering and clock helpers both apply so
// that identical inputs give identical results.
package repos

import (
	"context"

	"github.com/yungbote/studynotes-backend/internal/domain"
)

type UserRepo interface {
	// Create rejects a taken username or email with a conflict error and
	// stores only the password hash.
	Create(ctx context.Context, in domain.NewUser) (*domain.User, error)
	// VerifyCredential returns the user for email when password matches its
	// hash, otherwise the uniform auth error.
	VerifyCredential(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// Update refreshes LastActive even for an empty patch.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type NoteRepo interface {
	Create(ctx context.Context, ownerID string, in domain.NewNote) (*domain.Note, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Note, error)
	List(ctx context.Context, ownerID string, f NoteFilter) ([]*domain.Note, error)
	ListPublic(ctx context.Context, f NoteFilter) ([]*domain.Note, error)
	Update(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error)
	// Rate folds rating (1..5) into a public note's average.
	Rate(ctx context.Context, id string, rating int) (*domain.Note, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

type QuizRepo interface {
	Create(ctx context.Context, ownerID string, in domain.NewQuiz) (*domain.Quiz, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Quiz, error)
	List(ctx context.Context, ownerID string, f QuizFilter) ([]*domain.Quiz, error)
	ListPublic(ctx context.Context, f QuizFilter) ([]*domain.Quiz, error)
	Update(ctx context.Context, id, ownerID string, patch domain.QuizPatch) (*domain.Quiz, error)
	// RecordAttempt bumps the marketplace attempt counter of any quiz.
	RecordAttempt(ctx context.Context, id string) (*domain.Quiz, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

type QuizAttemptRepo interface {
	Create(ctx context.Context, ownerID string, in domain.NewQuizAttempt) (*domain.QuizAttempt, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.QuizAttempt, error)
	List(ctx context.Context, ownerID string, f AttemptFilter) ([]*domain.QuizAttempt, error)
	Update(ctx context.Context, id, ownerID string, patch domain.QuizAttemptPatch) (*domain.QuizAttempt, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

type ChatRepo interface {
	Create(ctx context.Context, ownerID string, in domain.NewChat) (*domain.ChatHistory, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.ChatHistory, error)
	List(ctx context.Context, ownerID string, f ChatFilter) ([]*domain.ChatHistory, error)
	Update(ctx context.Context, id, ownerID string, patch domain.ChatPatch) (*domain.ChatHistory, error)
	AppendMessages(ctx context.Context, id, ownerID string, msgs ...domain.ChatMessage) (*domain.ChatHistory, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

type StudySessionRepo interface {
	Create(ctx context.Context, ownerID string, in domain.NewStudySession) (*domain.StudySession, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.StudySession, error)
	List(ctx context.Context, ownerID string, f SessionFilter) ([]*domain.StudySession, error)
	Update(ctx context.Context, id, ownerID string, patch domain.StudySessionPatch) (*domain.StudySession, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

// Store bundles one backend's repositories. It is chosen once at startup and
// injected; callers never branch on Backend().
type Store interface {
	Users() UserRepo
	Notes() NoteRepo
	Quizzes() QuizRepo
	QuizAttempts() QuizAttemptRepo
	Chats() ChatRepo
	StudySessions() StudySessionRepo

	Backend() string
	Ping(ctx context.Context) error
	Close() error
}

// PasswordHasher is the slice of auth.Hasher the user repositories need.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// CanRead reports whether a lookup scoped to ownerID may see a record owned
// by stored. An empty ownerID is an unscoped lookup.
func CanRead(ownerID, stored string) bool {
	return ownerID == "" || ownerID == stored
}

// CanWrite requires an exact owner match.
func CanWrite(ownerID, stored string) bool {
	return ownerID != "" && ownerID == stored
}
