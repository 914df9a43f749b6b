package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gramline-backend/internal/middleware"
	"gramline-backend/internal/repository"
	"gramline-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// FollowHandler handles follow graph mutations
type FollowHandler struct {
	userService   *services.UserService
	followService *services.FollowService
	hub           *services.NotificationHub
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(userService *services.UserService, followService *services.FollowService, hub *services.NotificationHub) *FollowHandler {
	return &FollowHandler{
		userService:   userService,
		followService: followService,
		hub:           hub,
	}
}

// ToggleFollowRequest identifies the account being followed or unfollowed
type ToggleFollowRequest struct {
	TargetUserID string `json:"target_user_id"`
}

// ToggleFollow handles POST /api/v1/follow/toggle
func (h *FollowHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)

	var req ToggleFollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == "" {
		respondError(w, "target_user_id is required", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == viewerID {
		respondError(w, "Cannot follow yourself", http.StatusBadRequest)
		return
	}

	viewer, err := h.userService.UserByUserID(ctx, viewerID)
	if err != nil {
		respondError(w, "User not found", http.StatusNotFound)
		return
	}

	target, err := h.userService.UserByUserID(ctx, req.TargetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Target user not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("target_user_id", req.TargetUserID).Msg("Failed to get target user")
		respondError(w, "Failed to toggle follow", http.StatusInternalServerError)
		return
	}

	isFollowing, err := h.followService.IsFollowing(ctx, viewer.Username, target.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", viewerID).Msg("Failed to check follow status")
		respondError(w, "Failed to toggle follow", http.StatusInternalServerError)
		return
	}

	if err := h.followService.ToggleFollow(ctx, isFollowing, viewer.ID, target.ID, target.UserID, viewer.UserID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", viewerID).
			Str("target_user_id", target.UserID).
			Msg("Failed to toggle follow")
		respondError(w, "Failed to toggle follow", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", viewerID).
		Str("target_user_id", target.UserID).
		Bool("following", !isFollowing).
		Msg("Follow toggled")

	if !isFollowing {
		if err := h.hub.Notify(target.UserID, services.Event{
			Type:          services.EventFollow,
			ActorUsername: viewer.Username,
		}); err != nil {
			log.Debug().Err(err).Str("target_user_id", target.UserID).Msg("Follow event not delivered")
		}
	}

	response := map[string]interface{}{
		"following": !isFollowing,
	}

	respondJSON(w, response, http.StatusOK)
}
