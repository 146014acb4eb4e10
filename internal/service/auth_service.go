package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/logger"
	"printshop/internal/model"
	"printshop/internal/ratelimit"
	"printshop/internal/repository"
	"printshop/internal/utils"
)

const minPasswordLength = 6

// AuthService provides signup, login and session resolution
type AuthService interface {
	Register(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Identity(ctx context.Context, userID int) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	limiter  ratelimit.Limiter
}

// NewAuthService creates a new AuthService. A nil limiter disables login throttling.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, limiter ratelimit.Limiter) AuthService {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		limiter:  limiter,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account
func (s *authService) Register(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || len(req.Password) < minPasswordLength {
		return nil, ErrInvalidInput
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var institutionalID, batch *string
	if role == model.RoleStudent {
		id := strings.TrimSpace(req.InstitutionalID)
		if id == "" {
			return nil, fmt.Errorf("%w: students must provide an institutional ID", ErrInvalidInput)
		}
		institutionalID = &id
		if b := strings.TrimSpace(req.Batch); b != "" {
			batch = &b
		}
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}
	if institutionalID != nil {
		existing, err = s.userRepo.FindByInstitutionalID(ctx, *institutionalID)
		if err != nil {
			return nil, fmt.Errorf("failed to check institutional ID: %w", err)
		}
		if existing != nil {
			return nil, ErrDuplicateInstitutionalID
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:            name,
		Email:           email,
		PasswordHash:    hashedPassword,
		Role:            role,
		InstitutionalID: institutionalID,
		Batch:           batch,
		CreatedAt:       time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrInstitutionalIDTaken):
			return nil, ErrDuplicateInstitutionalID
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	logger.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("Account created")
	return user, nil
}

// Authenticate checks an email and password pair
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates under the login throttle and issues a session token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	allowed, err := s.limiter.Allow(ctx, "login:"+normalizeEmail(email))
	if err != nil {
		logger.Warn().Err(err).Msg("Login limiter unavailable, allowing attempt")
	}
	if !allowed {
		return nil, "", ErrTooManyAttempts
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtUtil.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Identity resolves a session back to a live account
func (s *authService) Identity(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}
