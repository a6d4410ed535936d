package domain

import "time"

type Profile struct {
	DisplayName    string   `json:"displayName"`
	EducationLevel string   `json:"educationLevel"`
	Subjects       []string `json:"subjects"`
	WeakAreas      []string `json:"weakAreas"`
	Bio            string   `json:"bio"`
}

type StudyPatterns struct {
	TotalStudyTime         int      `json:"totalStudyTime" validate:"gte=0"`
	SessionsCount          int      `json:"sessionsCount" validate:"gte=0"`
	AverageSessionDuration float64  `json:"averageSessionDuration"`
	PreferredSubjects      []string `json:"preferredSubjects"`
	WeakAreas              []string `json:"weakAreas"`
}

// RecordSession folds one finished study session into the running totals.
func (p StudyPatterns) RecordSession(subject string, minutes int) StudyPatterns {
	out := p
	out.PreferredSubjects = append([]string{}, p.PreferredSubjects...)
	out.WeakAreas = append([]string{}, p.WeakAreas...)
	out.TotalStudyTime += minutes
	out.SessionsCount++
	out.AverageSessionDuration = float64(out.TotalStudyTime) / float64(out.SessionsCount)
	out.PreferredSubjects = AddToSet(out.PreferredSubjects, subject)
	return out
}

type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	AIAssistance  bool   `json:"aiAssistance"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: "light", Notifications: true, AIAssistance: true}
}

// User never carries the password hash; only the repositories see it.
type User struct {
	ID            string        `json:"id"`
	Username      string        `json:"username" validate:"notblank"`
	Email         string        `json:"email" validate:"notblank"`
	Profile       Profile       `json:"profile"`
	StudyPatterns StudyPatterns `json:"studyPatterns"`
	Preferences   Preferences   `json:"preferences"`
	CreatedAt     time.Time     `json:"createdAt"`
	LastActive    time.Time     `json:"lastActive"`
}

type NewUser struct {
	Username string  `json:"username" validate:"notblank"`
	Email    string  `json:"email" validate:"notblank"`
	Password string  `json:"password" validate:"required"`
	Profile  Profile `json:"profile"`
}

type UserPatch struct {
	Profile       *Profile
	Preferences   *Preferences
	StudyPatterns *StudyPatterns
}

// NewUserRecord builds the stored user for in, minus the password.
func NewUserRecord(id string, in NewUser, now time.Time) *User {
	return &User{
		ID:          id,
		Username:    in.Username,
		Email:       in.Email,
		Profile:     in.Profile,
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		LastActive:  now,
	}
}

func (u *User) Apply(p UserPatch) {
	if p.Profile != nil {
		u.Profile = *p.Profile
	}
	if p.Preferences != nil {
		u.Preferences = *p.Preferences
	}
	if p.StudyPatterns != nil {
		u.StudyPatterns = *p.StudyPatterns
	}
}

// Prepare normalizes empty collections and validates the record.
func (u *User) Prepare() error {
	u.Profile.Subjects = nonNil(u.Profile.Subjects)
	u.Profile.WeakAreas = nonNil(u.Profile.WeakAreas)
	u.StudyPatterns.PreferredSubjects = nonNil(u.StudyPatterns.PreferredSubjects)
	u.StudyPatterns.WeakAreas = nonNil(u.StudyPatterns.WeakAreas)
	return Validate(u)
}
