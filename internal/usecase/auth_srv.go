package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donor-booking/internal/data/entity"
	"donor-booking/internal/data/repository"
	"donor-booking/internal/dto/request"
	"donor-booking/internal/dto/response"
	"donor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	// Authenticate resolves a bearer token to a user. Any failure wraps ErrUnauthenticated
	// unless the user lookup itself failed.
	Authenticate(ctx context.Context, token string) (uuid.UUID, entity.UserRole, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Field validation
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	dob, err := utils.ParseDate(req.DOB)
	if err != nil {
		return nil, invalidField("dob", "Must be a date in YYYY-MM-DD format")
	}

	// 2. Age window
	now := s.now()
	if age := entity.AgeAt(dob, now); age < entity.MinDonorAge || age > entity.MaxDonorAge {
		return nil, invalidField("dob", fmt.Sprintf("Age must be between %d and %d", entity.MinDonorAge, entity.MaxDonorAge))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	phone := strings.TrimSpace(req.Phone)

	// 3. Uniqueness, reported per field
	if err := s.ensureUnique(ctx, email, username, phone); err != nil {
		return nil, err
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		DOB:          dob,
		Gender:       entity.Gender(req.Gender),
		City:         req.City,
		District:     req.District,
		Ward:         req.Ward,
		Address:      req.Address,
		Username:     username,
		PasswordHash: hashedPassword,
		Email:        email,
		Phone:        phone,
		BloodType:    entity.BloodType(req.BloodType),
		Role:         entity.RoleDonor,
	}

	// 5. Save; a concurrent registration can still trip the unique constraints
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("account %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// unknown user and wrong password look the same to the caller
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return s.issue(user)
}

func (s *authService) Authenticate(ctx context.Context, token string) (uuid.UUID, entity.UserRole, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: bad subject", ErrUnauthenticated)
	}

	// tokens outlive accounts; refuse tokens whose user no longer exists
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return uuid.Nil, "", fmt.Errorf("%w: unknown user", ErrUnauthenticated)
	}

	return user.ID, user.Role, nil
}

func (s *authService) ensureUnique(ctx context.Context, email, username, phone string) error {
	checks := []struct {
		field string
		find  func(context.Context, string) (*entity.User, error)
		value string
		msg   string
	}{
		{"email", s.users.FindByEmail, email, "Email is already in use"},
		{"username", s.users.FindByUsername, username, "Username already exists"},
		{"phone", s.users.FindByPhone, phone, "Phone number is already in use"},
	}

	for _, c := range checks {
		existing, err := c.find(ctx, c.value)
		if err != nil {
			return fmt.Errorf("check %s: %w", c.field, err)
		}
		if existing != nil {
			return &DuplicateError{Field: c.field, Message: c.msg}
		}
	}

	return nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user, s.now()),
	}, nil
}
