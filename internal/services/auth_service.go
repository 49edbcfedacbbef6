package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/internal/utils"
	"cybertrax/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login checks the credentials and issues a bearer token.
	Login(ctx context.Context, request *models.AdminLoginRequest, ipAddress string) (*models.AdminLoginResponse, error)

	// VerifyCredentials authenticates HTTP Basic requests.
	VerifyCredentials(ctx context.Context, login, password string) (*models.Admin, error)

	// ValidateToken returns the admin id carried by a token issued by Login.
	ValidateToken(ctx context.Context, token string) (int64, error)

	// EnsureAdmin creates the admin account when no admin exists yet.
	EnsureAdmin(ctx context.Context, login, password string) (*models.Admin, bool, error)
}

type authService struct {
	adminRepo interfaces.AdminRepository
	jwtSecret string
	tokenTTL  time.Duration
	audit     *logger.AuditLogger
	logger    *logger.Logger
}

func NewAuthService(
	adminRepo interfaces.AdminRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log *logger.Logger,
) AuthService {
	return &authService{
		adminRepo: adminRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		audit:     logger.NewAuditLogger(log),
		logger:    log,
	}
}

func (s *authService) Login(ctx context.Context, request *models.AdminLoginRequest, ipAddress string) (*models.AdminLoginResponse, error) {
	admin, err := s.authenticate(ctx, request.Login, request.Password)
	s.audit.LogAuthEvent(request.Login, ipAddress, err == nil)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Login, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.logger.WithError(err).WithField("admin_id", admin.ID).Warn("Failed to record admin login")
	}

	s.logger.WithField("admin_id", admin.ID).Info("Admin logged in")

	return &models.AdminLoginResponse{
		Token:   token,
		AdminID: admin.ID,
	}, nil
}

func (s *authService) VerifyCredentials(ctx context.Context, login, password string) (*models.Admin, error) {
	return s.authenticate(ctx, login, password)
}

func (s *authService) ValidateToken(_ context.Context, token string) (int64, error) {
	claims, err := utils.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return 0, ErrInvalidCredentials
	}
	return claims.AdminID, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, login, password string) (*models.Admin, bool, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil, false, nil
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	admin := &models.Admin{Login: login, PasswordHash: hash}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.WithField("login", login).Info("Default admin created")
	return admin, true, nil
}

func (s *authService) authenticate(ctx context.Context, login, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithField("login", login).Warn("Login attempt with unknown admin")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if !s.checkPassword(password, admin.PasswordHash) {
		s.logger.LogSecurityEvent("admin_login_failed", "medium", logger.Fields{"login": login})
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authService) checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
