package app

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
}

type AuthService struct {
	repo  UserRepository
	clock clock.Clock
}

func NewAuthService(repo UserRepository, clk clock.Clock) *AuthService {
	return &AuthService{
		repo:  repo,
		clock: clk,
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return domain.User{}, domain.ErrUserNameRequired
	}
	if email == "" {
		return domain.User{}, domain.ErrEmailRequired
	}
	if len(in.Password) < minPasswordLength {
		return domain.User{}, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

const minPasswordLength = 8

type SignInInput struct {
	Email    string
	Password string
}

func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}
