package services

import (
	"context"
	"time"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

const (
	WeeklyGoalMinutes     = 300
	recentTopicNotes      = 5
	analyticsSessionLimit = 30
)

type EndSessionResult struct {
	Session        *domain.StudySession `json:"session"`
	TotalStudyTime int                  `json:"totalStudyTime"`
}

type Recommendations struct {
	Recommendations   string               `json:"recommendations"`
	StudyPatterns     domain.StudyPatterns `json:"studyPatterns"`
	PreferredSubjects []string             `json:"preferredSubjects"`
}

type SessionActivity struct {
	Subject  string    `json:"subject"`
	Duration int       `json:"duration"`
	Date     time.Time `json:"date"`
}

type Analytics struct {
	TotalStudyTime         int               `json:"totalStudyTime"`
	TotalSessions          int               `json:"totalSessions"`
	AverageSessionDuration float64           `json:"averageSessionDuration"`
	PreferredSubjects      []string          `json:"preferredSubjects"`
	RecentActivity         []SessionActivity `json:"recentActivity"`
	WeeklyGoal             int               `json:"weeklyGoal"`
	WeeklyProgress         int               `json:"weeklyProgress"`
}

type StudyService interface {
	Start(ctx context.Context, userID string, in domain.NewStudySession) (*domain.StudySession, error)
	// End closes a session and then folds it into the user's study
	// patterns. The two writes are independent.
	End(ctx context.Context, userID, id string, achievements []string) (*EndSessionResult, error)
	List(ctx context.Context, userID string, f repos.SessionFilter) ([]*domain.StudySession, error)
	Recommendations(ctx context.Context, userID string) (*Recommendations, error)
	Analytics(ctx context.Context, userID string) (*Analytics, error)
}

type studyService struct {
	log      *logger.Logger
	users    repos.UserRepo
	notes    repos.NoteRepo
	sessions repos.StudySessionRepo
	ai       *ai.Gateway
	now      func() time.Time
}

func NewStudyService(log *logger.Logger, users repos.UserRepo, notes repos.NoteRepo, sessions repos.StudySessionRepo, gateway *ai.Gateway, now func() time.Time) StudyService {
	if now == nil {
		now = time.Now
	}
	return &studyService{
		log:      log.With("service", "StudyService"),
		users:    users,
		notes:    notes,
		sessions: sessions,
		ai:       gateway,
		now:      now,
	}
}

func (s *studyService) Start(ctx context.Context, userID string, in domain.NewStudySession) (*domain.StudySession, error) {
	return s.sessions.Create(ctx, userID, in)
}

func (s *studyService) End(ctx context.Context, userID, id string, achievements []string) (*EndSessionResult, error) {
	end := s.now()
	patch := domain.StudySessionPatch{EndTime: &end}
	if achievements != nil {
		patch.Achievements = &achievements
	}
	sess, err := s.sessions.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	patterns := u.StudyPatterns.RecordSession(sess.Subject, sess.Duration)
	u, err = s.users.Update(ctx, userID, domain.UserPatch{StudyPatterns: &patterns})
	if err != nil {
		s.log.Error("study patterns update failed after session end", "user_id", userID, "session_id", id, "error", err)
		return nil, err
	}
	return &EndSessionResult{Session: sess, TotalStudyTime: u.StudyPatterns.TotalStudyTime}, nil
}

func (s *studyService) List(ctx context.Context, userID string, f repos.SessionFilter) ([]*domain.StudySession, error) {
	return s.sessions.List(ctx, userID, f)
}

func (s *studyService) Recommendations(ctx context.Context, userID string) (*Recommendations, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.notes.List(ctx, userID, repos.NoteFilter{Limit: recentTopicNotes})
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, n := range recent {
		if n.Subject != "" {
			topics = append(topics, n.Subject)
		}
	}
	return &Recommendations{
		Recommendations:   s.ai.RecommendStudy(ctx, u.Profile, topics),
		StudyPatterns:     u.StudyPatterns,
		PreferredSubjects: u.StudyPatterns.PreferredSubjects,
	}, nil
}

func (s *studyService) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.sessions.List(ctx, userID, repos.SessionFilter{Limit: analyticsSessionLimit})
	if err != nil {
		return nil, err
	}

	weekAgo := s.now().AddDate(0, 0, -7)
	out := &Analytics{
		TotalStudyTime:         u.StudyPatterns.TotalStudyTime,
		TotalSessions:          u.StudyPatterns.SessionsCount,
		AverageSessionDuration: u.StudyPatterns.AverageSessionDuration,
		PreferredSubjects:      u.StudyPatterns.PreferredSubjects,
		RecentActivity:         make([]SessionActivity, 0, len(recent)),
		WeeklyGoal:             WeeklyGoalMinutes,
	}
	for _, sess := range recent {
		out.RecentActivity = append(out.RecentActivity, SessionActivity{
			Subject:  sess.Subject,
			Duration: sess.Duration,
			Date:     sess.StartTime,
		})
		if !sess.StartTime.Before(weekAgo) {
			out.WeeklyProgress += sess.Duration
		}
	}
	return out, nil
}
