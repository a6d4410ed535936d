// Package memstore is the in-process fallback backend. Its state lives only
// as long as the process; nothing is persisted across restarts.
package memstore

import (
	"context"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

const Backend = "memory"

type Store struct {
	users    *userRepo
	notes    *noteRepo
	quizzes  *quizRepo
	attempts *attemptRepo
	chats    *chatRepo
	sessions *sessionRepo
}

var _ repos.Store = (*Store)(nil)

func New(baseLog *logger.Logger, opts repos.Options) *Store {
	opts = opts.WithDefaults()
	return &Store{
		users:    newUserRepo(baseLog, opts),
		notes:    newNoteRepo(baseLog, opts),
		quizzes:  newQuizRepo(baseLog, opts),
		attempts: newAttemptRepo(baseLog, opts),
		chats:    newChatRepo(baseLog, opts),
		sessions: newSessionRepo(baseLog, opts),
	}
}

func (s *Store) Users() repos.UserRepo { return s.users }
func (s *Store) Notes() repos.NoteRepo { return s.notes }
func (s *Store) Quizzes() repos.QuizRepo { return s.quizzes }
func (s *Store) QuizAttempts() repos.QuizAttemptRepo { return s.attempts }
func (s *Store) Chats() repos.ChatRepo { return s.chats }
func (s *Store) StudySessions() repos.StudySessionRepo { return s.sessions }

func (s *Store) Backend() string { return Backend }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
func (s *Store) Close() error { return nil }
