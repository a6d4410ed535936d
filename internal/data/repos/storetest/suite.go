// Package storetest is the conformance suite every repos.Store backend must
// pass. Backends call Run from their own tests with a factory that returns a
// clean, isolated store.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type MakeStore func(t *testing.T) repos.Store

func Run(t *testing.T, makeStore MakeStore) {
	t.Helper()
	cases := []struct {
		name string
		fn   func(t *testing.T, s repos.Store)
	}{
		{"UserUniqueness", testUserUniqueness},
		{"UserCredentials", testUserCredentials},
		{"UserUpdate", testUserUpdate},
		{"NoteRoundTrip", testNoteRoundTrip},
		{"NotePartialUpdate", testNotePartialUpdate},
		{"NoteSearch", testNoteSearch},
		{"NoteMarketplace", testNoteMarketplace},
		{"NoteDelete", testNoteDelete},
		{"QuizDerivedPoints", testQuizDerivedPoints},
		{"QuizMarketplace", testQuizMarketplace},
		{"QuizAttempts", testQuizAttempts},
		{"ChatMessages", testChatMessages},
		{"StudySessions", testStudySessions},
		{"ConcurrentWrites", testConcurrentWrites},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, makeStore(t))
		})
	}
}

func newUser(t *testing.T, s repos.Store, name string) *domain.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), domain.NewUser{
		Username: name,
		Email:    name + "@x.io",
		Password: "secret1",
	})
	require.NoError(t, err, "Create user %s", name)
	return u
}

func testUserUniqueness(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	require.NotEmpty(t, ada.ID)
	require.Equal(t, domain.DefaultPreferences(), ada.Preferences)

	_, err := s.Users().Create(ctx, domain.NewUser{Username: "ada2", Email: "ada@x.io", Password: "secret1"})
	require.True(t, apierr.IsConflict(err), "same email: got %v", err)

	_, err = s.Users().Create(ctx, domain.NewUser{Username: "ada", Email: "other@x.io", Password: "secret1"})
	require.True(t, apierr.IsConflict(err), "same username: got %v", err)

	_, err = s.Users().Create(ctx, domain.NewUser{Username: "Ada", Email: "Ada@x.io", Password: "secret1"})
	require.NoError(t, err, "case differs, must succeed")

	_, err = s.Users().Create(ctx, domain.NewUser{Username: " ", Email: "blank@x.io", Password: "secret1"})
	require.True(t, apierr.IsValidation(err), "blank username: got %v", err)
}

func testUserCredentials(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")

	got, err := s.Users().VerifyCredential(ctx, "ada@x.io", "secret1")
	require.NoError(t, err)
	require.Equal(t, ada.ID, got.ID)

	_, err = s.Users().VerifyCredential(ctx, "ada@x.io", "wrong")
	require.True(t, apierr.IsAuth(err), "wrong password: got %v", err)

	_, err = s.Users().VerifyCredential(ctx, "nobody@x.io", "secret1")
	require.True(t, apierr.IsAuth(err), "unknown email: got %v", err)
	require.Equal(t, "authentication failed", err.Error())
}

func testUserUpdate(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")

	profile := domain.Profile{DisplayName: "Ada", Subjects: []string{"math"}}
	got, err := s.Users().Update(ctx, ada.ID, domain.UserPatch{Profile: &profile})
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Profile.DisplayName)
	require.Equal(t, []string{"math"}, got.Profile.Subjects)
	require.Equal(t, []string{}, got.Profile.WeakAreas)
	require.Equal(t, ada.Preferences, got.Preferences)
	require.True(t, got.LastActive.After(ada.LastActive))

	stats := got.StudyPatterns.RecordSession("math", 30)
	got, err = s.Users().Update(ctx, ada.ID, domain.UserPatch{StudyPatterns: &stats})
	require.NoError(t, err)
	require.Equal(t, 30, got.StudyPatterns.TotalStudyTime)
	require.Equal(t, "Ada", got.Profile.DisplayName)

	fetched, err := s.Users().GetByID(ctx, ada.ID)
	require.NoError(t, err)
	require.Equal(t, got, fetched)

	_, err = s.Users().Update(ctx, "missing", domain.UserPatch{})
	require.True(t, apierr.IsNotFound(err))

	ok, err := s.Users().Delete(ctx, ada.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.Users().Delete(ctx, ada.ID)
	require.NoError(t, err)
	require.False(t, ok)
	_, err = s.Users().GetByID(ctx, ada.ID)
	require.True(t, apierr.IsNotFound(err))
}

func testNoteRoundTrip(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")

	n, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{
		Content: "Binary search halves the range each step.",
		Subject: "cs",
		Tags:    []string{"algo", "algo"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultNoteTitle, n.Title)
	require.Equal(t, domain.CategoryPersonal, n.Category)
	require.Equal(t, []string{"algo", "algo"}, n.Tags)
	require.False(t, n.Marketplace.IsPublic)
	require.Equal(t, n.CreatedAt, n.UpdatedAt)

	got, err := s.Notes().FindByID(ctx, n.ID, ada.ID)
	require.NoError(t, err)
	require.Equal(t, n, got)

	unscoped, err := s.Notes().FindByID(ctx, n.ID, "")
	require.NoError(t, err)
	require.Equal(t, n, unscoped)

	_, err = s.Notes().FindByID(ctx, n.ID, bob.ID)
	require.True(t, apierr.IsNotFound(err), "other owner: got %v", err)
	_, err = s.Notes().FindByID(ctx, "missing", ada.ID)
	require.True(t, apierr.IsNotFound(err))
	require.Equal(t, "note not found", err.Error())

	_, err = s.Notes().Create(ctx, ada.ID, domain.NewNote{Content: "  "})
	require.True(t, apierr.IsValidation(err), "blank content: got %v", err)
	_, err = s.Notes().Create(ctx, ada.ID, domain.NewNote{Content: "x", Category: "bogus"})
	require.True(t, apierr.IsValidation(err), "bad category: got %v", err)
}

func testNotePartialUpdate(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")
	n, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{Title: "t", Content: "c", Subject: "math", Tags: []string{"a"}})
	require.NoError(t, err)

	title := "renamed"
	got, err := s.Notes().Update(ctx, n.ID, ada.ID, domain.NotePatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, n.Content, got.Content)
	require.Equal(t, n.Subject, got.Subject)
	require.Equal(t, n.Tags, got.Tags)
	require.Equal(t, n.CreatedAt, got.CreatedAt)
	require.True(t, got.UpdatedAt.After(n.UpdatedAt), "updatedAt must increase")

	again, err := s.Notes().Update(ctx, n.ID, ada.ID, domain.NotePatch{})
	require.NoError(t, err)
	require.True(t, again.UpdatedAt.After(got.UpdatedAt), "updatedAt must increase on empty patch")

	_, err = s.Notes().Update(ctx, n.ID, bob.ID, domain.NotePatch{Title: &title})
	require.True(t, apierr.IsNotFound(err), "other owner: got %v", err)
	_, err = s.Notes().Update(ctx, n.ID, "", domain.NotePatch{Title: &title})
	require.True(t, apierr.IsNotFound(err), "unscoped update: got %v", err)

	empty := ""
	_, err = s.Notes().Update(ctx, n.ID, ada.ID, domain.NotePatch{Content: &empty})
	require.True(t, apierr.IsValidation(err), "blank content: got %v", err)
	kept, err := s.Notes().FindByID(ctx, n.ID, ada.ID)
	require.NoError(t, err)
	require.Equal(t, again, kept, "failed update must leave prior state")

	ai := domain.AIGenerated{Summary: "short"}
	got, err = s.Notes().Update(ctx, n.ID, ada.ID, domain.NotePatch{AIGenerated: &ai})
	require.NoError(t, err)
	require.Equal(t, "short", got.AIGenerated.Summary)
	require.Equal(t, []domain.GeneratedQuestion{}, got.AIGenerated.Questions)
}

func testNoteSearch(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")

	bin, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{Title: "Algorithms", Content: "Binary search halves the range each step.", Subject: "cs"})
	require.NoError(t, err)
	cell, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{Title: "Biology", Content: "Cells divide", Subject: "bio", Tags: []string{"Mitosis"}, Category: domain.CategoryStudy})
	require.NoError(t, err)
	_, err = s.Notes().Create(ctx, bob.ID, domain.NewNote{Title: "Bob binary", Content: "binary"})
	require.NoError(t, err)

	got, err := s.Notes().List(ctx, ada.ID, repos.NoteFilter{Search: "binary"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, bin.ID, got[0].ID)

	got, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{Search: "zzz"})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{Search: "MITO"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, cell.ID, got[0].ID)

	got, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{Category: domain.CategoryStudy, Subject: "bio"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, cell.ID, got[0].ID, "newest update first")

	title := "Algorithms 2"
	_, err = s.Notes().Update(ctx, bin.ID, ada.ID, domain.NotePatch{Title: &title})
	require.NoError(t, err)
	got, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, bin.ID, got[0].ID)

	got, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{SortBy: repos.SortTitle})
	require.NoError(t, err)
	require.Equal(t, bin.ID, got[0].ID)
}

func testNoteMarketplace(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	n, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{Title: "Graphs", Content: "BFS", Tags: []string{"graph"}})
	require.NoError(t, err)

	_, err = s.Notes().Rate(ctx, n.ID, 4)
	require.True(t, apierr.IsNotFound(err), "private note: got %v", err)

	pub := n.Marketplace
	pub.IsPublic = true
	_, err = s.Notes().Update(ctx, n.ID, ada.ID, domain.NotePatch{Marketplace: &pub})
	require.NoError(t, err)

	listed, err := s.Notes().ListPublic(ctx, repos.NoteFilter{Search: "GRAPH"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	listed, err = s.Notes().ListPublic(ctx, repos.NoteFilter{Search: "bfs"})
	require.NoError(t, err)
	require.Empty(t, listed, "public search skips content")

	_, err = s.Notes().Rate(ctx, n.ID, 4)
	require.NoError(t, err)
	rated, err := s.Notes().Rate(ctx, n.ID, 5)
	require.NoError(t, err)
	require.InDelta(t, 4.5, rated.Marketplace.Rating, 1e-9)
	require.Equal(t, 2, rated.Marketplace.RatingCount)

	_, err = s.Notes().Rate(ctx, n.ID, 6)
	require.True(t, apierr.IsValidation(err))
	_, err = s.Notes().Rate(ctx, n.ID, 0)
	require.True(t, apierr.IsValidation(err))
}

func testNoteDelete(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")
	n, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{Content: "c"})
	require.NoError(t, err)

	ok, err := s.Notes().Delete(ctx, n.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, ok, "other owner")
	ok, err = s.Notes().Delete(ctx, n.ID, ada.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.Notes().Delete(ctx, n.ID, ada.ID)
	require.NoError(t, err)
	require.False(t, ok, "double delete")
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{Question: "Sky is blue?", Type: domain.QuestionTrueFalse, CorrectAnswer: "true", Points: 3},
	}
}

func testQuizDerivedPoints(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")

	_, err := s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Title: "Empty"})
	require.True(t, apierr.IsValidation(err), "no questions: got %v", err)
	_, err = s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Questions: sampleQuestions()})
	require.True(t, apierr.IsValidation(err), "no title: got %v", err)
	_, err = s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Title: "Neg", Questions: []domain.Question{{Question: "q", Points: -1}}})
	require.True(t, apierr.IsValidation(err), "negative points: got %v", err)

	q, err := s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Title: "Basics", Questions: sampleQuestions()})
	require.NoError(t, err)
	require.Equal(t, domain.DifficultyMedium, q.Difficulty)
	require.Equal(t, domain.QuestionMultipleChoice, q.Questions[0].Type)
	require.Equal(t, 1, q.Questions[0].Points)
	require.Equal(t, 4, q.TotalPoints)

	qs := append(sampleQuestions(), domain.Question{Question: "Explain", Type: domain.QuestionShortAnswer, Points: 5})
	got, err := s.Quizzes().Update(ctx, q.ID, ada.ID, domain.QuizPatch{Questions: &qs})
	require.NoError(t, err)
	require.Equal(t, 9, got.TotalPoints)
	require.Equal(t, q.Title, got.Title)
	require.True(t, got.UpdatedAt.After(q.UpdatedAt))

	fetched, err := s.Quizzes().FindByID(ctx, q.ID, ada.ID)
	require.NoError(t, err)
	require.Equal(t, got, fetched)
}

func testQuizMarketplace(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")
	q, err := s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Title: "Basics", Subject: "math", Questions: sampleQuestions()})
	require.NoError(t, err)
	_, err = s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Title: "Hard one", Subject: "math", Difficulty: domain.DifficultyHard, Questions: sampleQuestions(), IsPublic: true})
	require.NoError(t, err)

	pub, err := s.Quizzes().ListPublic(ctx, repos.QuizFilter{})
	require.NoError(t, err)
	require.Len(t, pub, 1)

	yes := true
	_, err = s.Quizzes().Update(ctx, q.ID, ada.ID, domain.QuizPatch{IsPublic: &yes})
	require.NoError(t, err)
	pub, err = s.Quizzes().ListPublic(ctx, repos.QuizFilter{Difficulty: domain.DifficultyMedium})
	require.NoError(t, err)
	require.Len(t, pub, 1)
	require.Equal(t, q.ID, pub[0].ID)

	mine, err := s.Quizzes().List(ctx, ada.ID, repos.QuizFilter{Search: "HARD"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	theirs, err := s.Quizzes().List(ctx, bob.ID, repos.QuizFilter{})
	require.NoError(t, err)
	require.Empty(t, theirs)

	bumped, err := s.Quizzes().RecordAttempt(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, 1, bumped.Marketplace.Attempts)
	_, err = s.Quizzes().RecordAttempt(ctx, "missing")
	require.True(t, apierr.IsNotFound(err))

	ok, err := s.Quizzes().Delete(ctx, q.ID, ada.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

func testQuizAttempts(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	q, err := s.Quizzes().Create(ctx, ada.ID, domain.NewQuiz{Title: "Basics", Questions: sampleQuestions()})
	require.NoError(t, err)

	a1, err := s.QuizAttempts().Create(ctx, ada.ID, domain.NewQuizAttempt{QuizID: q.ID, Score: 3, TotalPoints: 4, TimeSpent: 40})
	require.NoError(t, err)
	require.InDelta(t, 75.0, a1.Percentage, 1e-9)
	require.Equal(t, []domain.Answer{}, a1.Answers)

	zero, err := s.QuizAttempts().Create(ctx, ada.ID, domain.NewQuizAttempt{QuizID: q.ID, Score: 0, TotalPoints: 0})
	require.NoError(t, err)
	require.Equal(t, 0.0, zero.Percentage)

	_, err = s.QuizAttempts().Create(ctx, ada.ID, domain.NewQuizAttempt{Score: 1, TotalPoints: 1})
	require.True(t, apierr.IsValidation(err), "missing quiz: got %v", err)

	score := 4
	updated, err := s.QuizAttempts().Update(ctx, a1.ID, ada.ID, domain.QuizAttemptPatch{Score: &score})
	require.NoError(t, err)
	require.InDelta(t, 100.0, updated.Percentage, 1e-9)
	require.Equal(t, 40, updated.TimeSpent)

	list, err := s.QuizAttempts().List(ctx, ada.ID, repos.AttemptFilter{QuizID: q.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, zero.ID, list[0].ID, "most recent first")

	list, err = s.QuizAttempts().List(ctx, ada.ID, repos.AttemptFilter{QuizID: "other"})
	require.NoError(t, err)
	require.Empty(t, list)
}

func testChatMessages(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")
	bob := newUser(t, s, "bob")

	c, err := s.Chats().Create(ctx, ada.ID, domain.NewChat{Context: domain.ChatContext{Subject: "math"}})
	require.NoError(t, err)
	require.Equal(t, []domain.ChatMessage{}, c.Messages)

	got, err := s.Chats().AppendMessages(ctx, c.ID, ada.ID,
		domain.ChatMessage{Role: domain.RoleUser, Content: "hi"},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: "hello"},
	)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	require.False(t, got.Messages[0].Timestamp.IsZero())
	require.True(t, got.UpdatedAt.After(c.UpdatedAt))

	_, err = s.Chats().AppendMessages(ctx, c.ID, ada.ID, domain.ChatMessage{Role: domain.RoleUser, Content: " "})
	require.True(t, apierr.IsValidation(err), "blank message: got %v", err)
	_, err = s.Chats().AppendMessages(ctx, c.ID, ada.ID, domain.ChatMessage{Role: "robot", Content: "x"})
	require.True(t, apierr.IsValidation(err), "bad role: got %v", err)
	_, err = s.Chats().AppendMessages(ctx, c.ID, bob.ID, domain.ChatMessage{Role: domain.RoleUser, Content: "x"})
	require.True(t, apierr.IsNotFound(err))

	fetched, err := s.Chats().FindByID(ctx, c.ID, ada.ID)
	require.NoError(t, err)
	require.Equal(t, got, fetched)

	goals := domain.ChatContext{Subject: "math", SessionGoals: []string{"limits"}}
	upd, err := s.Chats().Update(ctx, c.ID, ada.ID, domain.ChatPatch{Context: &goals})
	require.NoError(t, err)
	require.Len(t, upd.Messages, 2)
	require.Equal(t, []string{"limits"}, upd.Context.SessionGoals)

	_, err = s.Chats().Create(ctx, ada.ID, domain.NewChat{Context: domain.ChatContext{Subject: "art"}})
	require.NoError(t, err)
	list, err := s.Chats().List(ctx, ada.ID, repos.ChatFilter{Subject: "math"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	list, err = s.Chats().List(ctx, ada.ID, repos.ChatFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotEqual(t, c.ID, list[0].ID, "newest first")
}

func testStudySessions(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")

	sess, err := s.StudySessions().Create(ctx, ada.ID, domain.NewStudySession{Subject: "math", Topic: "limits", Goals: []string{"finish ch1"}})
	require.NoError(t, err)
	require.False(t, sess.StartTime.IsZero())
	require.Nil(t, sess.EndTime)
	require.Equal(t, 0, sess.Duration)

	end := sess.StartTime.Add(44*time.Minute + 31*time.Second)
	done, err := s.StudySessions().Update(ctx, sess.ID, ada.ID, domain.StudySessionPatch{
		EndTime:      &end,
		Achievements: &[]string{"Completed study session"},
	})
	require.NoError(t, err)
	require.Equal(t, 45, done.Duration)
	require.True(t, done.Ended())
	require.Equal(t, "limits", done.Topic)

	fetched, err := s.StudySessions().FindByID(ctx, sess.ID, ada.ID)
	require.NoError(t, err)
	require.Equal(t, done, fetched)

	other, err := s.StudySessions().Create(ctx, ada.ID, domain.NewStudySession{Subject: "art"})
	require.NoError(t, err)

	list, err := s.StudySessions().List(ctx, ada.ID, repos.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, other.ID, list[0].ID)

	list, err = s.StudySessions().List(ctx, ada.ID, repos.SessionFilter{From: other.StartTime})
	require.NoError(t, err)
	require.Len(t, list, 1)
	list, err = s.StudySessions().List(ctx, ada.ID, repos.SessionFilter{Subject: "math", To: sess.StartTime})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func testConcurrentWrites(t *testing.T, s repos.Store) {
	ctx := context.Background()
	ada := newUser(t, s, "ada")

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Notes().Create(ctx, ada.ID, domain.NewNote{Content: fmt.Sprintf("note %d", i)})
			if err == nil {
				_, err = s.Notes().List(ctx, ada.ID, repos.NoteFilter{})
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	list, err := s.Notes().List(ctx, ada.ID, repos.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, list, n)
}
