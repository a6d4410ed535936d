package repos

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/yungbote/studynotes-backend/internal/domain"
)

type SortKey string

const (
	SortUpdatedAt SortKey = "updatedAt"
	SortCreatedAt SortKey = "createdAt"
	SortTitle     SortKey = "title"
	SortRating    SortKey = "rating"
)

// ParseSortKey accepts the query forms "rating", "-rating" and
// "-marketplace.rating"; anything unknown yields "".
func ParseSortKey(s string) SortKey {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	s = strings.TrimPrefix(s, "marketplace.")
	switch SortKey(s) {
	case SortUpdatedAt, SortCreatedAt, SortTitle, SortRating:
		return SortKey(s)
	default:
		return ""
	}
}

type NoteFilter struct {
	Subject  string
	Category domain.Category
	Search   string
	SortBy   SortKey
	Limit    int
}

type QuizFilter struct {
	Subject    string
	Difficulty domain.Difficulty
	Search     string
	SortBy     SortKey
	Limit      int
}

type AttemptFilter struct {
	QuizID string
	Limit  int
}

type ChatFilter struct {
	Subject string
	Limit   int
}

// SessionFilter's From/To bound StartTime inclusively when non-zero.
type SessionFilter struct {
	Subject string
	From    time.Time
	To      time.Time
	Limit   int
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(items []string, needle string) bool {
	for _, it := range items {
		if containsFold(it, needle) {
			return true
		}
	}
	return false
}

func (f NoteFilter) matchExact(n *domain.Note) bool {
	if f.Subject != "" && n.Subject != f.Subject {
		return false
	}
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	return true
}

// Match searches title, content and every tag.
func (f NoteFilter) Match(n *domain.Note) bool {
	if !f.matchExact(n) {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(n.Title, f.Search) || containsFold(n.Content, f.Search) || anyContainsFold(n.Tags, f.Search)
}

// MatchPublic only considers public notes and searches title and tags.
func (f NoteFilter) MatchPublic(n *domain.Note) bool {
	if !n.Marketplace.IsPublic || !f.matchExact(n) {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(n.Title, f.Search) || anyContainsFold(n.Tags, f.Search)
}

func (f QuizFilter) Match(q *domain.Quiz) bool {
	if f.Subject != "" && q.Subject != f.Subject {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(q.Title, f.Search) || containsFold(q.Subject, f.Search)
}

func (f QuizFilter) MatchPublic(q *domain.Quiz) bool {
	return q.IsPublic && f.Match(q)
}

func (f AttemptFilter) Match(a *domain.QuizAttempt) bool {
	return f.QuizID == "" || a.QuizID == f.QuizID
}

func (f ChatFilter) Match(c *domain.ChatHistory) bool {
	return f.Subject == "" || c.Context.Subject == f.Subject
}

func (f SessionFilter) Match(s *domain.StudySession) bool {
	if f.Subject != "" && s.Subject != f.Subject {
		return false
	}
	if !f.From.IsZero() && s.StartTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && s.StartTime.After(f.To) {
		return false
	}
	return true
}

// orderBy sorts with cmpFn and breaks ties by ascending id.
func orderBy[T any](items []T, cmpFn func(a, b T) int, id func(T) string) {
	slices.SortFunc(items, func(a, b T) int {
		if c := cmpFn(a, b); c != 0 {
			return c
		}
		return strings.Compare(id(a), id(b))
	})
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func newerFirst(a, b time.Time) int { return b.Compare(a) }

func noteOrder(key SortKey) func(a, b *domain.Note) int {
	switch key {
	case SortCreatedAt:
		return func(a, b *domain.Note) int { return newerFirst(a.CreatedAt, b.CreatedAt) }
	case SortTitle:
		return func(a, b *domain.Note) int { return strings.Compare(a.Title, b.Title) }
	case SortRating:
		return func(a, b *domain.Note) int { return cmp.Compare(b.Marketplace.Rating, a.Marketplace.Rating) }
	default:
		return func(a, b *domain.Note) int { return newerFirst(a.UpdatedAt, b.UpdatedAt) }
	}
}

func quizOrder(key SortKey) func(a, b *domain.Quiz) int {
	switch key {
	case SortCreatedAt:
		return func(a, b *domain.Quiz) int { return newerFirst(a.CreatedAt, b.CreatedAt) }
	case SortTitle:
		return func(a, b *domain.Quiz) int { return strings.Compare(a.Title, b.Title) }
	case SortRating:
		return func(a, b *domain.Quiz) int { return cmp.Compare(b.Marketplace.Rating, a.Marketplace.Rating) }
	default:
		return func(a, b *domain.Quiz) int { return newerFirst(a.UpdatedAt, b.UpdatedAt) }
	}
}

func noteID(n *domain.Note) string { return n.ID }
func quizID(q *domain.Quiz) string { return q.ID }
func attemptID(a *domain.QuizAttempt) string { return a.ID }
func chatID(c *domain.ChatHistory) string { return c.ID }
func sessionID(s *domain.StudySession) string { return s.ID }

func orDefault[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

// The Apply* functions are the single query evaluator: backends hand them an
// owner-scoped candidate set and return the result unchanged.

func ApplyNoteFilter(notes []*domain.Note, f NoteFilter) []*domain.Note {
	out := keep(notes, f.Match)
	orderBy(out, noteOrder(f.SortBy), noteID)
	return limit(out, f.Limit)
}

func ApplyPublicNoteFilter(notes []*domain.Note, f NoteFilter) []*domain.Note {
	out := keep(notes, f.MatchPublic)
	orderBy(out, noteOrder(orDefault(f.SortBy, SortRating)), noteID)
	return limit(out, f.Limit)
}

func ApplyQuizFilter(quizzes []*domain.Quiz, f QuizFilter) []*domain.Quiz {
	out := keep(quizzes, f.Match)
	orderBy(out, quizOrder(f.SortBy), quizID)
	return limit(out, f.Limit)
}

func ApplyPublicQuizFilter(quizzes []*domain.Quiz, f QuizFilter) []*domain.Quiz {
	out := keep(quizzes, f.MatchPublic)
	orderBy(out, quizOrder(orDefault(f.SortBy, SortRating)), quizID)
	return limit(out, f.Limit)
}

func ApplyAttemptFilter(attempts []*domain.QuizAttempt, f AttemptFilter) []*domain.QuizAttempt {
	out := keep(attempts, f.Match)
	orderBy(out, func(a, b *domain.QuizAttempt) int { return newerFirst(a.CompletedAt, b.CompletedAt) }, attemptID)
	return limit(out, f.Limit)
}

func ApplyChatFilter(chats []*domain.ChatHistory, f ChatFilter) []*domain.ChatHistory {
	out := keep(chats, f.Match)
	orderBy(out, func(a, b *domain.ChatHistory) int { return newerFirst(a.UpdatedAt, b.UpdatedAt) }, chatID)
	return limit(out, f.Limit)
}

func ApplySessionFilter(sessions []*domain.StudySession, f SessionFilter) []*domain.StudySession {
	out := keep(sessions, f.Match)
	orderBy(out, func(a, b *domain.StudySession) int { return newerFirst(a.StartTime, b.StartTime) }, sessionID)
	return limit(out, f.Limit)
}
