package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrWeakPassword  = errors.New("password must be at least 8 characters and contain a letter and a digit")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByLogin(ctx context.Context, login string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Login accepts either the username or the email address as login.
func (s *AuthService) Login(ctx context.Context, login, password string) (domain.User, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByLogin -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// EnsureAdmin creates the configured administrator on first start. It is a
// no-op when no admin is configured or the account already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, conf *config.AdminConfig) error {
	if conf == nil || conf.Username == "" || conf.Password == "" {
		return nil
	}

	_, err := s.repo.FindByLogin(ctx, conf.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByLogin -> %w", err)
	}

	name := conf.Name
	if name == "" {
		name = conf.Username
	}

	if _, err := createUser(ctx, s.repo, domain.User{
		Name:     name,
		Username: conf.Username,
		Email:    conf.Email,
		Password: conf.Password,
		Role:     domain.RoleAdministrator,
	}); err != nil {
		return err
	}

	zap.L().Info("administrator account created", zap.String("username", conf.Username))

	return nil
}

type userCreator interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

func createUser(ctx context.Context, repo userCreator, user domain.User) (domain.User, error) {
	if !domain.PasswordAcceptable(user.Password) {
		return domain.User{}, ErrWeakPassword
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashedPassword

	created, err := repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.Create -> %w", err)
	}

	return created, nil
}

// Helper function for password hashing
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
