package services

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/data/repos/memstore"
	"github.com/yungbote/studynotes-backend/internal/data/repos/testutil"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type fixture struct {
	store repos.Store
	auth  AuthService
	notes NoteService
	quiz  QuizService
	chat  ChatService
	study StudyService
}

var studyNow = time.Date(2024, 1, 1, 9, 25, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Nop()
	store := memstore.New(log, testutil.Options())
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	gw := ai.NewGateway(nil, log, nil, time.Second)
	return &fixture{
		store: store,
		auth:  NewAuthService(log, store.Users(), tokens),
		notes: NewNoteService(log, store.Notes(), gw),
		quiz:  NewQuizService(log, store.Notes(), store.Quizzes(), store.QuizAttempts(), gw),
		chat:  NewChatService(log, store.Chats(), gw),
		study: NewStudyService(log, store.Users(), store.Notes(), store.StudySessions(), gw, func() time.Time { return studyNow }),
	}
}

func (f *fixture) register(t *testing.T, name string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(t.Context(), RegisterInput{Username: name, Email: name + "@x.io", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register %s: %v", name, err)
	}
	return res
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]RegisterInput{
		"short username": {Username: "ab", Email: "ab@x.io", Password: "secret1"},
		"bad email":      {Username: "abc", Email: "not-an-email", Password: "secret1"},
		"short password": {Username: "abc", Email: "abc@x.io", Password: "12345"},
	}
	for name, in := range cases {
		if _, err := f.auth.Register(t.Context(), in); !apierr.IsValidation(err) {
			t.Fatalf("%s: got %v, want validation error", name, err)
		}
	}
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t)
	reg := f.register(t, "ada")
	if reg.Token == "" || reg.User.ID == "" {
		t.Fatalf("Register: got %+v", reg)
	}
	if _, err := f.auth.Register(t.Context(), RegisterInput{Username: "ada", Email: "other@x.io", Password: "secret1"}); !apierr.IsConflict(err) {
		t.Fatalf("duplicate username: got %v", err)
	}

	login, err := f.auth.Login(t.Context(), "ada@x.io", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !login.User.LastActive.After(reg.User.LastActive) {
		t.Fatalf("Login must refresh lastActive")
	}
	if _, err := f.auth.Login(t.Context(), "ada@x.io", "wrong"); !apierr.IsAuth(err) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := f.auth.Login(t.Context(), "nobody@x.io", "secret1"); !apierr.IsAuth(err) {
		t.Fatalf("unknown email: got %v", err)
	}

	u, err := f.auth.Authenticate(t.Context(), login.Token)
	if err != nil || u.ID != reg.User.ID {
		t.Fatalf("Authenticate: got %v, %v", u, err)
	}
	if _, err := f.auth.Authenticate(t.Context(), "garbage"); !apierr.IsAuth(err) {
		t.Fatalf("bad token: got %v", err)
	}

	if _, err := f.store.Users().Delete(t.Context(), reg.User.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.auth.Authenticate(t.Context(), login.Token); !apierr.IsAuth(err) {
		t.Fatalf("token for deleted user: got %v", err)
	}
}

func TestRegisterLongPassword(t *testing.T) {
	f := newFixture(t)
	password := strings.Repeat("p", 80)
	if _, err := f.auth.Register(t.Context(), RegisterInput{Username: "grace", Email: "grace@x.io", Password: password}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := f.auth.Login(t.Context(), "grace@x.io", password); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := f.auth.Login(t.Context(), "grace@x.io", password[:72]); !apierr.IsAuth(err) {
		t.Fatalf("truncated password: got %v", err)
	}
}

func TestUpdateProfileMerges(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "ada").User
	level := "college"
	theme := "dark"
	if _, err := f.auth.UpdateProfile(t.Context(), ada.ID, ProfileUpdate{
		Profile: &ProfilePatch{DisplayName: ptr("Ada"), Subjects: &[]string{"math"}},
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	u, err := f.auth.UpdateProfile(t.Context(), ada.ID, ProfileUpdate{
		Profile:     &ProfilePatch{EducationLevel: &level},
		Preferences: &PreferencesPatch{Theme: &theme},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Profile.DisplayName != "Ada" || u.Profile.EducationLevel != "college" || len(u.Profile.Subjects) != 1 {
		t.Fatalf("profile merge: got %+v", u.Profile)
	}
	if u.Preferences.Theme != "dark" || !u.Preferences.Notifications {
		t.Fatalf("preferences merge: got %+v", u.Preferences)
	}
}

// Registers ada, writes a note, summarizes it without a model provider and
// checks the summary persisted and search finds the note.
func TestAdaScenario(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "ada").User

	n, err := f.notes.Create(t.Context(), ada.ID, domain.NewNote{Content: "Binary search halves the range each step."})
	if err != nil {
		t.Fatalf("Create note: %v", err)
	}
	summary, err := f.notes.Summarize(t.Context(), ada.ID, n.ID)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(summary, "Binary search halves the range each step....") {
		t.Fatalf("summary must contain the truncated content: %q", summary)
	}
	stored, err := f.notes.Get(t.Context(), ada.ID, n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.AIGenerated.Summary != summary {
		t.Fatalf("summary not persisted: %q", stored.AIGenerated.Summary)
	}

	hits, err := f.notes.List(t.Context(), ada.ID, repos.NoteFilter{Search: "binary"})
	if err != nil || len(hits) != 1 {
		t.Fatalf("search binary: got %d, %v", len(hits), err)
	}
	misses, err := f.notes.List(t.Context(), ada.ID, repos.NoteFilter{Search: "zzz"})
	if err != nil || len(misses) != 0 {
		t.Fatalf("search zzz: got %d, %v", len(misses), err)
	}
}

func TestNoteAIAndMarketplace(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "ada").User
	bob := f.register(t, "bob").User
	n, err := f.notes.Create(t.Context(), ada.ID, domain.NewNote{Title: "Cells", Content: "Mitosis", Tags: []string{"bio"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	qs, err := f.notes.GenerateQuestions(t.Context(), ada.ID, n.ID, 5, "medium")
	if err != nil || len(qs) != 5 {
		t.Fatalf("GenerateQuestions: got %d, %v", len(qs), err)
	}
	if _, err := f.notes.GenerateQuestions(t.Context(), bob.ID, n.ID, 5, "medium"); !apierr.IsNotFound(err) {
		t.Fatalf("other owner: got %v", err)
	}
	if exp, err := f.notes.ExplainConcept(t.Context(), ada.ID, n.ID, "mitosis"); err != nil || !strings.Contains(exp, "mitosis") {
		t.Fatalf("ExplainConcept: %q, %v", exp, err)
	}

	if _, err := f.notes.Rate(t.Context(), n.ID, 4); !apierr.IsNotFound(err) {
		t.Fatalf("rating a private note: got %v", err)
	}
	if _, err := f.notes.Share(t.Context(), ada.ID, n.ID, true); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if _, err := f.notes.Rate(t.Context(), n.ID, 6); !apierr.IsValidation(err) {
		t.Fatalf("rating 6: got %v", err)
	}
	if _, err := f.notes.Rate(t.Context(), n.ID, 5); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	r, err := f.notes.Rate(t.Context(), n.ID, 2)
	if err != nil || r.AverageRating != 3.5 || r.RatingCount != 2 {
		t.Fatalf("Rate: got %+v, %v", r, err)
	}

	public, err := f.notes.ListPublic(t.Context(), repos.NoteFilter{Search: "bio"})
	if err != nil || len(public) != 1 {
		t.Fatalf("ListPublic: got %d, %v", len(public), err)
	}
	if public[0].Content != "" {
		t.Fatalf("public listing must not expose content")
	}

	if err := f.notes.Delete(t.Context(), ada.ID, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.notes.Delete(t.Context(), ada.ID, n.ID); !apierr.IsNotFound(err) {
		t.Fatalf("second Delete: got %v", err)
	}
}

func TestQuizGenerateAndAttempt(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "ada").User
	bob := f.register(t, "bob").User
	n, err := f.notes.Create(t.Context(), ada.ID, domain.NewNote{Content: "Photosynthesis", Subject: "biology"})
	if err != nil {
		t.Fatalf("Create note: %v", err)
	}

	if _, err := f.quiz.GenerateFromNotes(t.Context(), bob.ID, GenerateQuizInput{NoteIDs: []string{n.ID}}); !apierr.IsNotFound(err) {
		t.Fatalf("foreign notes: got %v", err)
	}
	q, err := f.quiz.GenerateFromNotes(t.Context(), ada.ID, GenerateQuizInput{NoteIDs: []string{n.ID}, QuestionCount: 3, Difficulty: "hard"})
	if err != nil {
		t.Fatalf("GenerateFromNotes: %v", err)
	}
	if q.Title != DefaultGeneratedQuizTitle || q.Subject != "biology" || q.Difficulty != domain.DifficultyHard {
		t.Fatalf("quiz: got %+v", q)
	}
	if len(q.Questions) != 3 || q.TotalPoints != 3 || q.TimeLimit != 6 {
		t.Fatalf("derived fields: questions=%d total=%d limit=%d", len(q.Questions), q.TotalPoints, q.TimeLimit)
	}
	if len(q.Questions[0].Options) != 4 || q.Questions[0].CorrectAnswer != "Option A (Generated)" {
		t.Fatalf("placeholder options: got %+v", q.Questions[0])
	}

	if _, err := f.quiz.SubmitAttempt(t.Context(), bob.ID, q.ID, SubmitAttemptInput{}); !apierr.IsNotFound(err) {
		t.Fatalf("private quiz attempt by another user: got %v", err)
	}
	res, err := f.quiz.SubmitAttempt(t.Context(), ada.ID, q.ID, SubmitAttemptInput{
		Answers:   []string{"Option A (Generated)", "Option B (Generated)", "Option A (Generated)"},
		TimeSpent: 90,
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.Score != 2 || res.TotalPoints != 3 || res.AttemptID == "" {
		t.Fatalf("attempt: got %+v", res)
	}

	if _, err := f.quiz.Share(t.Context(), ada.ID, q.ID, true); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if _, err := f.quiz.SubmitAttempt(t.Context(), bob.ID, q.ID, SubmitAttemptInput{Answers: []string{"x"}}); err != nil {
		t.Fatalf("public quiz attempt: %v", err)
	}
	stored, err := f.quiz.Get(t.Context(), ada.ID, q.ID)
	if err != nil || stored.Marketplace.Attempts != 2 {
		t.Fatalf("attempt counter: got %+v, %v", stored.Marketplace, err)
	}

	public, err := f.quiz.ListPublic(t.Context(), repos.QuizFilter{})
	if err != nil || len(public) != 1 || len(public[0].Questions) != 0 {
		t.Fatalf("ListPublic: got %+v, %v", public, err)
	}
	attempts, err := f.quiz.Attempts(t.Context(), ada.ID, repos.AttemptFilter{})
	if err != nil || len(attempts) != 1 || attempts[0].Percentage != res.Percentage {
		t.Fatalf("Attempts: got %+v, %v", attempts, err)
	}
}

func TestChatSendMessage(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "ada").User

	if _, err := f.chat.SendMessage(t.Context(), ada.ID, "", "  "); !apierr.IsValidation(err) {
		t.Fatalf("blank message: got %v", err)
	}
	reply, err := f.chat.SendMessage(t.Context(), ada.ID, "", "What is a cell?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !strings.Contains(reply.Response, "What is a cell?") || reply.SessionID == "" {
		t.Fatalf("reply: got %+v", reply)
	}
	if _, err := f.chat.SendMessage(t.Context(), ada.ID, reply.SessionID, "And a tissue?"); err != nil {
		t.Fatalf("SendMessage again: %v", err)
	}
	c, err := f.chat.Get(t.Context(), ada.ID, reply.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(c.Messages) != 4 || c.Messages[3].Role != domain.RoleAssistant {
		t.Fatalf("messages: got %+v", c.Messages)
	}

	for i := 0; i < 11; i++ {
		if _, err := f.chat.Create(t.Context(), ada.ID, domain.ChatContext{}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	history, err := f.chat.History(t.Context(), ada.ID)
	if err != nil || len(history) != 10 {
		t.Fatalf("History: got %d, %v", len(history), err)
	}
	if err := f.chat.Delete(t.Context(), ada.ID, reply.SessionID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.chat.SendMessage(t.Context(), ada.ID, reply.SessionID, "hi"); !apierr.IsNotFound(err) {
		t.Fatalf("deleted session: got %v", err)
	}
}

func TestStudySessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "ada").User

	sess, err := f.study.Start(t.Context(), ada.ID, domain.NewStudySession{Subject: "math", Goals: []string{"limits"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	res, err := f.study.End(t.Context(), ada.ID, sess.ID, []string{"finished chapter"})
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if res.Session.Duration != 25 || res.TotalStudyTime != 25 || len(res.Session.Achievements) != 1 {
		t.Fatalf("End: got %+v", res)
	}

	profile, err := f.auth.Profile(t.Context(), ada.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.StudyPatterns.SessionsCount != 1 || profile.StudyPatterns.PreferredSubjects[0] != "math" {
		t.Fatalf("study patterns: got %+v", profile.StudyPatterns)
	}

	a, err := f.study.Analytics(t.Context(), ada.ID)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if a.WeeklyGoal != WeeklyGoalMinutes || a.WeeklyProgress != 25 || len(a.RecentActivity) != 1 {
		t.Fatalf("Analytics: got %+v", a)
	}

	if _, err := f.notes.Create(t.Context(), ada.ID, domain.NewNote{Content: "x", Subject: "physics"}); err != nil {
		t.Fatalf("Create note: %v", err)
	}
	rec, err := f.study.Recommendations(t.Context(), ada.ID)
	if err != nil || !strings.HasPrefix(rec.Recommendations, "Study Recommendations:") {
		t.Fatalf("Recommendations: got %+v, %v", rec, err)
	}

	if _, err := f.study.End(t.Context(), "someone-else", sess.ID, nil); !apierr.IsNotFound(err) {
		t.Fatalf("End by another user: got %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
