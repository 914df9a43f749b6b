package handlers

import (
	"errors"
	"net/http"

	"gramline-backend/internal/middleware"
	"gramline-backend/internal/repository"
	"gramline-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// TimelineHandler handles timeline requests
type TimelineHandler struct {
	timelineService *services.TimelineService
	userService     *services.UserService
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timelineService *services.TimelineService, userService *services.UserService) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
		userService:     userService,
	}
}

// GetTimeline handles GET /api/v1/timeline
func (h *TimelineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)

	viewer, err := h.userService.UserByUserID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", viewerID).Msg("Failed to get viewer")
		respondError(w, "Failed to get timeline", http.StatusInternalServerError)
		return
	}

	photos, err := h.timelineService.Timeline(ctx, viewer)
	if err != nil {
		log.Error().Err(err).Str("user_id", viewerID).Msg("Failed to get timeline")
		respondError(w, "Failed to get timeline", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"photos": photos,
		"total":  len(photos),
	}

	respondJSON(w, response, http.StatusOK)
}
