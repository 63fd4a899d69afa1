package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo          ports.UserRepository
	jwtSecret     string
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, adminEmail, adminPassword string) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		repo:          repo,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		adminEmail:    normalizeEmail(adminEmail),
		adminPassword: adminPassword,
	}
}

// Register creates a new user. The ADMIN role is assigned only when the
// submitted credentials match the configured admin pair; everyone else is a
// regular USER. The email uniqueness pre-check is a fast path; the store's
// unique index still rejects a racing duplicate.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.NewValidationError("Email and password are required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	role := domain.RoleUser
	if s.adminEmail != "" && email == s.adminEmail && password == s.adminPassword {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login verifies the credentials and issues a token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"role":   string(user.Role),
		"exp":    time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
