package handlers

import (
	"errors"
	"net/http"

	"gramline-backend/internal/middleware"
	"gramline-backend/internal/repository"
	"gramline-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserHandler handles profile and suggestion requests
type UserHandler struct {
	userService   *services.UserService
	followService *services.FollowService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, followService *services.FollowService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		followService: followService,
	}
}

// GetProfile handles GET /api/v1/users/{username}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)
	username := chi.URLParam(r, "username")

	profile, err := h.userService.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to get profile")
		respondError(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	isFollowing := false
	if viewer, err := h.userService.UserByUserID(ctx, viewerID); err == nil {
		isFollowing, err = h.followService.IsFollowing(ctx, viewer.Username, profile.UserID)
		if err != nil {
			log.Error().Err(err).Str("username", username).Msg("Failed to check follow status")
			respondError(w, "Failed to get profile", http.StatusInternalServerError)
			return
		}
	}

	response := map[string]interface{}{
		"user":           profile,
		"is_following":   isFollowing,
		"follower_count": len(profile.Followers),
	}

	respondJSON(w, response, http.StatusOK)
}

// GetSuggestions handles GET /api/v1/suggestions
func (h *UserHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)

	viewer, err := h.userService.UserByUserID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", viewerID).Msg("Failed to get viewer")
		respondError(w, "Failed to get suggestions", http.StatusInternalServerError)
		return
	}

	profiles, err := h.userService.SuggestedProfiles(ctx, viewer.UserID, viewer.Following)
	if err != nil {
		log.Error().Err(err).Str("user_id", viewerID).Msg("Failed to get suggested profiles")
		respondError(w, "Failed to get suggestions", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"profiles": profiles,
	}

	respondJSON(w, response, http.StatusOK)
}
