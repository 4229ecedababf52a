package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
)

// ResetTokenTTL bounds how long a password reset token stays valid.
const ResetTokenTTL = 15 * time.Minute

type RegisterRequest struct {
	Name     string           `json:"name" binding:"required,min=2,max=100"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=6"`
	Phone    string           `json:"phone" binding:"required"`
	Role     string           `json:"role" binding:"required,oneof=buyer seller rider"`
	Location *models.Location `json:"location"`

	BusinessName        string `json:"businessName"`
	BusinessDescription string `json:"businessDescription"`
	BusinessCategory    string `json:"businessCategory"`

	VehicleType   string `json:"vehicleType" binding:"omitempty,oneof=motorcycle bicycle car"`
	LicenseNumber string `json:"licenseNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// AuthResult is a signed token paired with the authenticated profile.
type AuthResult struct {
	Token string                 `json:"token"`
	User  map[string]interface{} `json:"user"`
}

// Claims carried in the JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenStore holds password-reset tokens keyed by email. Implementations
// are expected to expire entries on their own.
type TokenStore interface {
	Set(ctx context.Context, email, token string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// AuthService handles registration, login and password resets. Reset
// tokens live in Redis with a TTL and are delivered out of band; in this
// build they are written to the log instead of an email provider.
type AuthService struct {
	users       repository.UserRepository
	resetTokens TokenStore
	jwtSecret   []byte
	tokenTTL    time.Duration
	log         *zap.Logger
}

func NewAuthService(users repository.UserRepository, resetTokens TokenStore, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		resetTokens: resetTokens,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

// Register creates a user with a bcrypt-hashed password and returns a
// signed token. Email and phone must both be unused.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.users.FindByEmailOrPhone(ctx, email, req.Phone); err == nil && existing != nil {
		return nil, apperrors.Conflict("User with this email or phone already exists")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unavailable("Failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    email,
		Password: string(hash),
		Phone:    req.Phone,
		Role:     req.Role,
		Location: req.Location,
		IsActive: true,

		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		BusinessCategory:    req.BusinessCategory,

		VehicleType:   req.VehicleType,
		LicenseNumber: req.LicenseNumber,
		IsAvailable:   req.Role == models.RoleRider,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("User with this email or phone already exists")
		}
		return nil, apperrors.Unavailable("Failed to create user", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign token", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login verifies credentials. Unknown email and bad password return the
// same message.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation("Invalid email or password")
		}
		return nil, apperrors.Unavailable("Failed to load user", err)
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Validation("Invalid email or password")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign token", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID string) (map[string]interface{}, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unavailable("Failed to load user", err)
	}
	return user.Public(), nil
}

// ForgotPassword issues a reset token for the email. The response is the
// same whether or not the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperrors.Unavailable("Failed to load user", err)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return apperrors.Internal("Failed to generate token", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.resetTokens.Set(ctx, email, token); err != nil {
		return apperrors.Unavailable("Failed to store reset token", err)
	}

	// Stand-in for the mail provider integration.
	s.log.Info("password reset token issued", zap.String("email", email), zap.String("token", token))
	return nil
}

// ResetPassword consumes a valid token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	stored, err := s.resetTokens.Get(ctx, email)
	if err != nil {
		return apperrors.Unavailable("Failed to load reset token", err)
	}
	if stored == "" || stored != req.Token {
		return apperrors.Validation("Invalid or expired reset token")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Validation("Invalid or expired reset token")
		}
		return apperrors.Unavailable("Failed to load user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("Failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return apperrors.Unavailable("Failed to update password", err)
	}

	if err := s.resetTokens.Delete(ctx, email); err != nil {
		s.log.Warn("failed to delete reset token", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// ParseToken validates a signed token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
