package service

import (
	"context"
	"errors"
	"fmt"

	"backend/customerrors"
	"backend/model"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the storage capability the service needs. Satisfied by
// repository.UserRepository.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error
}

type UserService interface {
	CreateUser(ctx context.Context, request model.RegisterRequest) (*model.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*model.User, error)
}

type UserServiceImpl struct {
	repo UserStore
}

func NewUserService(repo UserStore) UserService {
	return &UserServiceImpl{repo: repo}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, request model.RegisterRequest) (*model.User, error) {
	existing, err := s.repo.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if existing != nil {
		return nil, customerrors.ErrUserAlreadyExists
	}

	user, err := request.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to process user data: %w", err)
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyCredentials never reveals whether the username or the password was
// wrong; both cases map to ErrInvalidCredentials.
func (s *UserServiceImpl) VerifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if user == nil {
		return nil, customerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, customerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}
