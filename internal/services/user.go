package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gramline-backend/internal/models"
	"gramline-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	suggestedPageSize = 10
	jwtExpDays        = 365
)

// ErrUsernameTaken is returned by Signup when the requested username
// already exists at check time.
var ErrUsernameTaken = errors.New("username already taken")

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles account and user-query business logic
type UserService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Signup creates a new account. Username uniqueness is check-then-act:
// the store enforces no constraint, so two concurrent sign-ups with the
// same name can both pass the check.
func (s *UserService) Signup(ctx context.Context, username, fullName, email, password string) (*models.User, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		UserID:       uuid.New().String(),
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Followers:    []string{},
		Following:    []string{},
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateJWT(user.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies email/password credentials and issues a JWT
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// GenerateJWT generates a JWT token for a user
func (s *UserService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}

// UsernameExists reports whether a user with that exact username exists
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.userRepo.UsernameExists(ctx, username)
}

// UserByUserID resolves a user by their stable identity
func (s *UserService) UserByUserID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByUserID(ctx, userID)
}

// UserByUsername resolves a user by username
func (s *UserService) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// SuggestedProfiles returns up to suggestedPageSize candidate accounts,
// excluding the viewer and anyone already followed. The page is fetched
// first and filtered after, so fewer than a full page may come back even
// when more eligible users exist.
func (s *UserService) SuggestedProfiles(ctx context.Context, viewerID string, following []string) ([]*models.User, error) {
	profiles, err := s.userRepo.ListProfiles(ctx, suggestedPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	followed := make(map[string]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	suggested := make([]*models.User, 0, len(profiles))
	for _, profile := range profiles {
		if profile.UserID == viewerID || followed[profile.UserID] {
			continue
		}
		suggested = append(suggested, profile)
	}

	return suggested, nil
}
