package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gramline-backend/internal/middleware"
	"gramline-backend/internal/repository"
	"gramline-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles profile photo reads, likes and comments
type PhotoHandler struct {
	photoService *services.PhotoService
	userService  *services.UserService
	hub          *services.NotificationHub
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService, userService *services.UserService, hub *services.NotificationHub) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		userService:  userService,
		hub:          hub,
	}
}

// GetUserPhotos handles GET /api/v1/users/{username}/photos
func (h *PhotoHandler) GetUserPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	photos, err := h.photoService.PhotosByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to get user photos")
		respondError(w, "Failed to get photos", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"photos": photos,
		"total":  len(photos),
	}

	respondJSON(w, response, http.StatusOK)
}

// ToggleLike handles POST /api/v1/photos/{photo_id}/likes
func (h *PhotoHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)
	photoID := chi.URLParam(r, "photo_id")

	photo, err := h.photoService.PhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Photo not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("photo_id", photoID).Msg("Failed to get photo")
		respondError(w, "Failed to toggle like", http.StatusInternalServerError)
		return
	}

	hasLiked := false
	for _, id := range photo.Likes {
		if id == viewerID {
			hasLiked = true
			break
		}
	}

	if err := h.photoService.ToggleLike(ctx, photoID, viewerID, hasLiked); err != nil {
		log.Error().
			Err(err).
			Str("photo_id", photoID).
			Str("user_id", viewerID).
			Msg("Failed to toggle like")
		respondError(w, "Failed to toggle like", http.StatusInternalServerError)
		return
	}

	if !hasLiked && photo.UserID != viewerID {
		if viewer, err := h.userService.UserByUserID(ctx, viewerID); err == nil {
			if err := h.hub.Notify(photo.UserID, services.Event{
				Type:          services.EventLike,
				ActorUsername: viewer.Username,
				PhotoID:       photoID,
			}); err != nil {
				log.Debug().Err(err).Str("photo_id", photoID).Msg("Like event not delivered")
			}
		}
	}

	response := map[string]interface{}{
		"liked": !hasLiked,
	}

	respondJSON(w, response, http.StatusOK)
}

// AddCommentRequest represents a comment request body
type AddCommentRequest struct {
	Text string `json:"text"`
}

// AddComment handles POST /api/v1/photos/{photo_id}/comments
func (h *PhotoHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)
	photoID := chi.URLParam(r, "photo_id")

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	viewer, err := h.userService.UserByUserID(ctx, viewerID)
	if err != nil {
		respondError(w, "User not found", http.StatusNotFound)
		return
	}

	comment, err := h.photoService.AddComment(ctx, photoID, viewer.Username, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidComment):
			respondError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrNotFound):
			respondError(w, "Photo not found", http.StatusNotFound)
		default:
			log.Error().
				Err(err).
				Str("photo_id", photoID).
				Str("user_id", viewerID).
				Msg("Failed to add comment")
			respondError(w, "Failed to add comment", http.StatusInternalServerError)
		}
		return
	}

	if photo, err := h.photoService.PhotoByID(ctx, photoID); err == nil && photo.UserID != viewerID {
		if err := h.hub.Notify(photo.UserID, services.Event{
			Type:          services.EventComment,
			ActorUsername: viewer.Username,
			PhotoID:       photoID,
			Comment:       comment.Text,
		}); err != nil {
			log.Debug().Err(err).Str("photo_id", photoID).Msg("Comment event not delivered")
		}
	}

	respondJSON(w, comment, http.StatusCreated)
}
