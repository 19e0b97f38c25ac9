package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/auth"
	"github.com/kaukau001/url-shortener-api/internal/models"
	"github.com/kaukau001/url-shortener-api/internal/repository"
)

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	log    zerolog.Logger
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenIssuer, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a user with a bcrypt-hashed password. The email must not
// belong to a non-deleted user already.
func (s *UserService) Register(ctx context.Context, email, password string) (*UserResponse, error) {
	email = strings.TrimSpace(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Msg("registration lookup failed")
		return nil, apperrors.Unavailable("unable to register at this time")
	}
	if existing != nil {
		s.log.Warn().Str("email", email).Msg("registration rejected, email already exists")
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, apperrors.Conflict("email already registered")
		}
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, apperrors.Unavailable("unable to register at this time")
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &UserResponse{ID: user.ID, Email: user.Email}, nil
}

// Login authenticates by email and password. Bad credentials yield no token
// and no error; the transport maps the nil result to 401.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.log.Error().Err(err).Msg("login lookup failed")
		return nil, apperrors.Unavailable("unable to login at this time")
	}
	if user == nil {
		return nil, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.log.Warn().Str("user_id", user.ID).Msg("login failed, invalid credentials")
		return nil, nil
	}

	token, err := s.tokens.Sign(user.ID, user.Email)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to sign token")
		return nil, apperrors.Unavailable("unable to login at this time")
	}

	return &AuthResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Email: user.Email},
	}, nil
}
