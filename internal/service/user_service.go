package service

import (
	"context"
	"errors"

	"issue-tracker/internal/auth"
	"issue-tracker/internal/entity"
	"issue-tracker/internal/repository"
)

// ErrInvalidCredentials is returned when a login fails. The api layer
// maps it to 401.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService handles registration, login and session resolution.
type UserService struct {
	users    repository.UserRepository
	sessions *auth.Manager
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repository.UserRepository, sessions *auth.Manager) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// Register creates a new user. Duplicate usernames return
// repository.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return created, nil
}

// Login checks the credentials and issues a session token. Credentials
// are stored and compared as opaque strings.
func (s *UserService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Password != password {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error issuing session for user %d", user.ID)
		return nil, "", err
	}

	return user, token, nil
}

// CurrentUser resolves a bearer token to the authenticated user.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) GetByID(ctx context.Context, id int) (*entity.User, error) {
	return s.users.GetByID(ctx, id)
}
