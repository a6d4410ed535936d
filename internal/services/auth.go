package services

import (
	"context"
	"strings"

	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type RegisterInput struct {
	Username string         `json:"username" validate:"required,min=3"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Profile  domain.Profile `json:"profile"`
}

// ProfilePatch and PreferencesPatch merge key by key into the stored values.
type ProfilePatch struct {
	DisplayName    *string   `json:"displayName"`
	EducationLevel *string   `json:"educationLevel"`
	Subjects       *[]string `json:"subjects"`
	WeakAreas      *[]string `json:"weakAreas"`
	Bio            *string   `json:"bio"`
}

type PreferencesPatch struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	AIAssistance  *bool   `json:"aiAssistance"`
}

type ProfileUpdate struct {
	Profile     *ProfilePatch     `json:"profile"`
	Preferences *PreferencesPatch `json:"preferences"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Authenticate resolves a bearer token to an existing user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error)
}

type authService struct {
	log    *logger.Logger
	users  repos.UserRepo
	tokens *auth.TokenIssuer
}

func NewAuthService(log *logger.Logger, users repos.UserRepo, tokens *auth.TokenIssuer) AuthService {
	return &authService{
		log:    log.With("service", "AuthService"),
		users:  users,
		tokens: tokens,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, domain.NewUser{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Profile:  in.Profile,
	})
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", u.ID)
	return &AuthResult{Token: token, User: u}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apierr.Validation("email and password are required")
	}
	u, err := s.users.VerifyCredential(ctx, email, password)
	if err != nil {
		if apierr.IsAuth(err) {
			s.log.Debug("login rejected", "email", email)
		}
		return nil, err
	}
	// Refreshes lastActive.
	u, err = s.users.Update(ctx, u.ID, domain.UserPatch{})
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apierr.IsNotFound(err) {
			return nil, apierr.Auth()
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var patch domain.UserPatch
	if in.Profile != nil {
		p := mergeProfile(u.Profile, *in.Profile)
		patch.Profile = &p
	}
	if in.Preferences != nil {
		p := mergePreferences(u.Preferences, *in.Preferences)
		patch.Preferences = &p
	}
	return s.users.Update(ctx, userID, patch)
}

func mergeProfile(p domain.Profile, in ProfilePatch) domain.Profile {
	if in.DisplayName != nil {
		p.DisplayName = *in.DisplayName
	}
	if in.EducationLevel != nil {
		p.EducationLevel = *in.EducationLevel
	}
	if in.Subjects != nil {
		p.Subjects = append([]string{}, (*in.Subjects)...)
	}
	if in.WeakAreas != nil {
		p.WeakAreas = append([]string{}, (*in.WeakAreas)...)
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	return p
}

func mergePreferences(p domain.Preferences, in PreferencesPatch) domain.Preferences {
	if in.Theme != nil {
		p.Theme = *in.Theme
	}
	if in.Notifications != nil {
		p.Notifications = *in.Notifications
	}
	if in.AIAssistance != nil {
		p.AIAssistance = *in.AIAssistance
	}
	return p
}
