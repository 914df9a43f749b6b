package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gramline-backend/internal/models"
	"gramline-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles sign-up and login requests
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// SignupRequest represents a sign-up request body
type SignupRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the account record and its session token
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup handles POST /api/v1/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.FullName == "" || req.Email == "" || req.Password == "" {
		respondError(w, "username, full_name, email and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Signup(ctx, req.Username, req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			respondError(w, "That username is already taken, please try another.", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to sign up user")
		respondError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.UserID).
		Str("username", user.Username).
		Msg("User created")

	respondJSON(w, AuthResponse{User: user, Token: token}, http.StatusCreated)
}

// Login handles POST /api/v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to log in user")
		respondError(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.UserID).
		Str("username", user.Username).
		Msg("User logged in")

	respondJSON(w, AuthResponse{User: user, Token: token}, http.StatusOK)
}
