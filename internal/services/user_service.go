package services

import (
	"context"
	"errors"
	"fmt"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/internal/utils"
	"cybertrax/pkg/logger"
)

type UserService interface {
	// CreateUser registers a client. When the phone is already known the
	// existing user is returned and created is false.
	CreateUser(ctx context.Context, request *models.CreateUserRequest) (user *models.User, created bool, err error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, phone string) ([]*models.User, error)
}

type userService struct {
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, log *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   log,
	}
}

func (s *userService) CreateUser(ctx context.Context, request *models.CreateUserRequest) (*models.User, bool, error) {
	phone := utils.NormalizePhone(request.Phone)

	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &models.User{
		FullName: request.FullName,
		Phone:    phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration with the same phone.
		if errors.Is(err, interfaces.ErrDuplicate) {
			existing, getErr := s.userRepo.GetByPhone(ctx, phone)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to look up user: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logger.Fields{
		"user_id": user.ID,
		"phone":   utils.MaskPhone(user.Phone),
	}).Info("User registered")

	return user, true, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, phone string) ([]*models.User, error) {
	if phone != "" {
		phone = utils.NormalizePhone(phone)
	}
	users, err := s.userRepo.List(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
