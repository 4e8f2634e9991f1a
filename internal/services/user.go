package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/access"
	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req *models.ChangePasswordRequest) error
}

type userService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{
		repo:      repo,
		rateLimit: rateLimit,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
	}
}

// newFreeSubscription is the subscription every account starts with.
func newFreeSubscription(now time.Time) *models.Subscription {
	return &models.Subscription{
		Tier:      models.TierFree,
		StartDate: &now,
		IsActive:  true,
		Features:  access.Features(models.TierFree),
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:         utils.SanitizeText(req.Name),
		Email:        req.Email,
		Password:     string(hashedPassword),
		Subscription: newFreeSubscription(time.Now().UTC()),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, appErrors.DuplicateEntryError("Email already registered")
		}

		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	logger.Info("User registered", slog.String("userId", user.ID.String()))

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	limit, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !limit.Allowed {
		metrics.RecordLoginAttempt(errors.New("rate limited"))

		return nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", int(limit.RetryAfter.Seconds())))
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		metrics.RecordLoginAttempt(errors.New("invalid credentials"))

		return nil, appErrors.UnauthorizedError("Invalid email or password").
			WithDetail(fmt.Sprintf("%d attempts remaining", limit.Remaining))
	}

	now := time.Now()

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	if err := s.rateLimit.ResetLoginAttempts(ctx, req.Email); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	metrics.RecordLoginAttempt(nil)

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		User:      withSubscription(user),
	}, nil
}

// withSubscription fills in the default subscription for accounts stored
// without one and re-derives the feature map from the tier.
func withSubscription(user *models.User) *models.User {
	if user.Subscription == nil {
		user.Subscription = newFreeSubscription(user.CreatedAt)
	}

	user.Subscription.Features = access.Features(user.Subscription.Tier)

	return user
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return withSubscription(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := utils.SanitizeText(*req.Name)
		if name == "" {
			return nil, appErrors.ValidationError("Name cannot be empty")
		}

		user.Name = name
	}

	if req.Phone != nil {
		user.Phone = utils.SanitizeText(*req.Phone)
	}

	if req.Address != nil {
		user.Address = utils.SanitizeText(*req.Address)
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, appErrors.DatabaseError("Failed to update profile").WithError(err)
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, req *models.ChangePasswordRequest) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return appErrors.BadRequestError("Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.InternalError("Failed to secure password").WithError(err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashedPassword)); err != nil {
		return appErrors.DatabaseError("Failed to change password").WithError(err)
	}

	return nil
}
