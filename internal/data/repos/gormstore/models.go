package gormstore

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/studynotes-backend/internal/domain"
)

// Rows keep scalar fields and anything filtered in SQL as columns; nested
// attributes are JSON documents. Timestamps come from the shared clock, so
// gorm's automatic stamping is off.

type userRow struct {
	ID            string                                   `gorm:"primaryKey;size:64"`
	Username      string                                   `gorm:"not null;uniqueIndex:idx_users_username"`
	Email         string                                   `gorm:"not null;uniqueIndex:idx_users_email"`
	PasswordHash  string                                   `gorm:"not null"`
	Profile       datatypes.JSONType[domain.Profile]       `gorm:"not null"`
	StudyPatterns datatypes.JSONType[domain.StudyPatterns] `gorm:"not null"`
	Preferences   datatypes.JSONType[domain.Preferences]   `gorm:"not null"`
	CreatedAt     time.Time                                `gorm:"not null;autoCreateTime:false"`
	LastActive    time.Time                                `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func newUserRow(u *domain.User, hash string) *userRow {
	return &userRow{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		PasswordHash:  hash,
		Profile:       datatypes.NewJSONType(u.Profile),
		StudyPatterns: datatypes.NewJSONType(u.StudyPatterns),
		Preferences:   datatypes.NewJSONType(u.Preferences),
		CreatedAt:     u.CreatedAt,
		LastActive:    u.LastActive,
	}
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:            r.ID,
		Username:      r.Username,
		Email:         r.Email,
		Profile:       r.Profile.Data(),
		StudyPatterns: r.StudyPatterns.Data(),
		Preferences:   r.Preferences.Data(),
		CreatedAt:     r.CreatedAt.UTC(),
		LastActive:    r.LastActive.UTC(),
	}
}

type noteRow struct {
	ID          string `gorm:"primaryKey;size:64"`
	OwnerID     string `gorm:"not null;index"`
	Title       string
	Content     string                                 `gorm:"not null"`
	Subject     string                                 `gorm:"index"`
	Tags        datatypes.JSONType[[]string]           `gorm:"not null"`
	Category    string                                 `gorm:"not null"`
	AIGenerated datatypes.JSONType[domain.AIGenerated] `gorm:"not null"`
	IsPublic    bool                                   `gorm:"not null;index"`
	Rating      float64                                `gorm:"not null"`
	RatingCount int                                    `gorm:"not null"`
	Downloads   int                                    `gorm:"not null"`
	CreatedAt   time.Time                              `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time                              `gorm:"not null;autoUpdateTime:false"`
}

func (noteRow) TableName() string { return "notes" }

func newNoteRow(n *domain.Note) *noteRow {
	return &noteRow{
		ID:          n.ID,
		OwnerID:     n.OwnerID,
		Title:       n.Title,
		Content:     n.Content,
		Subject:     n.Subject,
		Tags:        datatypes.NewJSONType(n.Tags),
		Category:    string(n.Category),
		AIGenerated: datatypes.NewJSONType(n.AIGenerated),
		IsPublic:    n.Marketplace.IsPublic,
		Rating:      n.Marketplace.Rating,
		RatingCount: n.Marketplace.RatingCount,
		Downloads:   n.Marketplace.Downloads,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func (r *noteRow) toDomain() *domain.Note {
	return &domain.Note{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Content:     r.Content,
		Subject:     r.Subject,
		Tags:        r.Tags.Data(),
		Category:    domain.Category(r.Category),
		AIGenerated: r.AIGenerated.Data(),
		Marketplace: domain.NoteMarketplace{
			IsPublic:    r.IsPublic,
			Rating:      r.Rating,
			RatingCount: r.RatingCount,
			Downloads:   r.Downloads,
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type quizRow struct {
	ID          string                                `gorm:"primaryKey;size:64"`
	OwnerID     string                                `gorm:"not null;index"`
	Title       string                                `gorm:"not null"`
	Subject     string                                `gorm:"index"`
	Difficulty  string                                `gorm:"not null"`
	SourceNotes datatypes.JSONType[[]string]          `gorm:"not null"`
	Questions   datatypes.JSONType[[]domain.Question] `gorm:"not null"`
	TotalPoints int                                   `gorm:"not null"`
	TimeLimit   int                                   `gorm:"not null"`
	IsPublic    bool                                  `gorm:"not null;index"`
	Rating      float64                               `gorm:"not null"`
	RatingCount int                                   `gorm:"not null"`
	Attempts    int                                   `gorm:"not null"`
	CreatedAt   time.Time                             `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time                             `gorm:"not null;autoUpdateTime:false"`
}

func (quizRow) TableName() string { return "quizzes" }

func newQuizRow(q *domain.Quiz) *quizRow {
	return &quizRow{
		ID:          q.ID,
		OwnerID:     q.OwnerID,
		Title:       q.Title,
		Subject:     q.Subject,
		Difficulty:  string(q.Difficulty),
		SourceNotes: datatypes.NewJSONType(q.SourceNotes),
		Questions:   datatypes.NewJSONType(q.Questions),
		TotalPoints: q.TotalPoints,
		TimeLimit:   q.TimeLimit,
		IsPublic:    q.IsPublic,
		Rating:      q.Marketplace.Rating,
		RatingCount: q.Marketplace.RatingCount,
		Attempts:    q.Marketplace.Attempts,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func (r *quizRow) toDomain() *domain.Quiz {
	return &domain.Quiz{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Subject:     r.Subject,
		Difficulty:  domain.Difficulty(r.Difficulty),
		SourceNotes: r.SourceNotes.Data(),
		Questions:   r.Questions.Data(),
		TotalPoints: r.TotalPoints,
		TimeLimit:   r.TimeLimit,
		IsPublic:    r.IsPublic,
		Marketplace: domain.QuizMarketplace{
			Rating:      r.Rating,
			RatingCount: r.RatingCount,
			Attempts:    r.Attempts,
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type attemptRow struct {
	ID          string                              `gorm:"primaryKey;size:64"`
	OwnerID     string                              `gorm:"not null;index"`
	QuizID      string                              `gorm:"not null;index"`
	Answers     datatypes.JSONType[[]domain.Answer] `gorm:"not null"`
	Score       int                                 `gorm:"not null"`
	TotalPoints int                                 `gorm:"not null"`
	Percentage  float64                             `gorm:"not null"`
	TimeSpent   int                                 `gorm:"not null"`
	CompletedAt time.Time                           `gorm:"not null"`
}

func (attemptRow) TableName() string { return "quiz_attempts" }

func newAttemptRow(a *domain.QuizAttempt) *attemptRow {
	return &attemptRow{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		QuizID:      a.QuizID,
		Answers:     datatypes.NewJSONType(a.Answers),
		Score:       a.Score,
		TotalPoints: a.TotalPoints,
		Percentage:  a.Percentage,
		TimeSpent:   a.TimeSpent,
		CompletedAt: a.CompletedAt,
	}
}

func (r *attemptRow) toDomain() *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		QuizID:      r.QuizID,
		Answers:     r.Answers.Data(),
		Score:       r.Score,
		TotalPoints: r.TotalPoints,
		Percentage:  r.Percentage,
		TimeSpent:   r.TimeSpent,
		CompletedAt: r.CompletedAt.UTC(),
	}
}

type chatRow struct {
	ID        string                                   `gorm:"primaryKey;size:64"`
	OwnerID   string                                   `gorm:"not null;index"`
	Subject   string                                   `gorm:"index"`
	Messages  datatypes.JSONType[[]domain.ChatMessage] `gorm:"not null"`
	Context   datatypes.JSONType[domain.ChatContext]   `gorm:"not null"`
	CreatedAt time.Time                                `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time                                `gorm:"not null;autoUpdateTime:false"`
}

func (chatRow) TableName() string { return "chat_histories" }

func newChatRow(c *domain.ChatHistory) *chatRow {
	return &chatRow{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Subject:   c.Context.Subject,
		Messages:  datatypes.NewJSONType(c.Messages),
		Context:   datatypes.NewJSONType(c.Context),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *chatRow) toDomain() *domain.ChatHistory {
	return &domain.ChatHistory{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Messages:  r.Messages.Data(),
		Context:   r.Context.Data(),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type sessionRow struct {
	ID             string `gorm:"primaryKey;size:64"`
	OwnerID        string `gorm:"not null;index"`
	Subject        string `gorm:"index"`
	Topic          string
	Duration       int                                        `gorm:"not null"`
	Notes          datatypes.JSONType[[]string]               `gorm:"not null"`
	Quizzes        datatypes.JSONType[[]string]               `gorm:"not null"`
	AIInteractions datatypes.JSONType[[]domain.AIInteraction] `gorm:"not null"`
	Goals          datatypes.JSONType[[]string]               `gorm:"not null"`
	Achievements   datatypes.JSONType[[]string]               `gorm:"not null"`
	StartTime      time.Time                                  `gorm:"not null;index"`
	EndTime        *time.Time
}

func (sessionRow) TableName() string { return "study_sessions" }

func newSessionRow(s *domain.StudySession) *sessionRow {
	return &sessionRow{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Subject:        s.Subject,
		Topic:          s.Topic,
		Duration:       s.Duration,
		Notes:          datatypes.NewJSONType(s.Notes),
		Quizzes:        datatypes.NewJSONType(s.Quizzes),
		AIInteractions: datatypes.NewJSONType(s.AIInteractions),
		Goals:          datatypes.NewJSONType(s.Goals),
		Achievements:   datatypes.NewJSONType(s.Achievements),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
	}
}

func (r *sessionRow) toDomain() *domain.StudySession {
	s := &domain.StudySession{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Subject:        r.Subject,
		Topic:          r.Topic,
		Duration:       r.Duration,
		Notes:          r.Notes.Data(),
		Quizzes:        r.Quizzes.Data(),
		AIInteractions: r.AIInteractions.Data(),
		Goals:          r.Goals.Data(),
		Achievements:   r.Achievements.Data(),
		StartTime:      r.StartTime.UTC(),
	}
	if r.EndTime != nil {
		end := r.EndTime.UTC()
		s.EndTime = &end
	}
	return s
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&userRow{},
		&noteRow{},
		&quizRow{},
		&attemptRow{},
		&chatRow{},
		&sessionRow{},
	}
}
