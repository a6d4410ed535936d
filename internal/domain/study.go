package domain

import "time"

type AIInteraction struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type StudySession struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner"`
	Subject        string          `json:"subject"`
	Topic          string          `json:"topic"`
	Duration       int             `json:"duration"`
	Notes          []string        `json:"notes"`
	Quizzes        []string        `json:"quizzes"`
	AIInteractions []AIInteraction `json:"aiInteractions"`
	Goals          []string        `json:"goals"`
	Achievements   []string        `json:"achievements"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
}

// Ended reports whether the session has been closed.
func (s *StudySession) Ended() bool { return s.EndTime != nil }

type NewStudySession struct {
	Subject string   `json:"subject"`
	Topic   string   `json:"topic"`
	Goals   []string `json:"goals"`
	Notes   []string `json:"notes"`
	Quizzes []string `json:"quizzes"`
}

type StudySessionPatch struct {
	Topic          *string
	Notes          *[]string
	Quizzes        *[]string
	AIInteractions *[]AIInteraction
	Goals          *[]string
	Achievements   *[]string
	EndTime        *time.Time
}

func NewStudySessionRecord(id, ownerID string, in NewStudySession, now time.Time) *StudySession {
	return &StudySession{
		ID:        id,
		OwnerID:   ownerID,
		Subject:   in.Subject,
		Topic:     in.Topic,
		Notes:     append([]string{}, in.Notes...),
		Quizzes:   append([]string{}, in.Quizzes...),
		Goals:     append([]string{}, in.Goals...),
		StartTime: now,
	}
}

func (s *StudySession) Apply(p StudySessionPatch) {
	if p.Topic != nil {
		s.Topic = *p.Topic
	}
	if p.Notes != nil {
		s.Notes = append([]string{}, (*p.Notes)...)
	}
	if p.Quizzes != nil {
		s.Quizzes = append([]string{}, (*p.Quizzes)...)
	}
	if p.AIInteractions != nil {
		s.AIInteractions = append([]AIInteraction{}, (*p.AIInteractions)...)
	}
	if p.Goals != nil {
		s.Goals = append([]string{}, (*p.Goals)...)
	}
	if p.Achievements != nil {
		s.Achievements = append([]string{}, (*p.Achievements)...)
	}
	if p.EndTime != nil {
		end := *p.EndTime
		s.EndTime = &end
	}
}

// Prepare derives Duration from the start and end times once the session is
// closed.
func (s *StudySession) Prepare() error {
	s.Notes = nonNil(s.Notes)
	s.Quizzes = nonNil(s.Quizzes)
	s.AIInteractions = nonNil(s.AIInteractions)
	s.Goals = nonNil(s.Goals)
	s.Achievements = nonNil(s.Achievements)
	s.StartTime = StoredTime(s.StartTime)
	for i := range s.AIInteractions {
		s.AIInteractions[i].Timestamp = StoredTime(s.AIInteractions[i].Timestamp)
	}
	if s.EndTime != nil {
		end := StoredTime(*s.EndTime)
		s.EndTime = &end
		s.Duration = SessionMinutes(s.StartTime, *s.EndTime)
	}
	return Validate(s)
}
