package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gramline-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepository handles database operations for photos. Likes use the
// same single-statement set semantics as the follow arrays; comments are
// an ordered jsonb list appended in place.
type PhotoRepository interface {
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	GetByOwnerIDs(ctx context.Context, ownerIDs []string) ([]*models.Photo, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Photo, error)
	AddLike(ctx context.Context, photoID, userID string) error
	RemoveLike(ctx context.Context, photoID, userID string) error
	AppendComment(ctx context.Context, photoID string, comment models.Comment) error
}

type photoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *pgxpool.Pool) PhotoRepository {
	return &photoRepository{db: db}
}

const photoColumns = `id, user_id, image_key, caption, likes, comments, created_at`

func scanPhoto(row pgx.Row) (*models.Photo, error) {
	var photo models.Photo
	err := row.Scan(
		&photo.ID, &photo.UserID, &photo.ImageKey, &photo.Caption,
		&photo.Likes, &photo.Comments, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetByID retrieves a photo by ID
func (r *photoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`
	photo, err := scanPhoto(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

// GetByOwnerIDs retrieves all photos whose owner is in ownerIDs
func (r *photoRepository) GetByOwnerIDs(ctx context.Context, ownerIDs []string) ([]*models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE user_id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}
	defer rows.Close()
	return collectPhotos(rows)
}

// GetByOwnerID retrieves one user's photos, newest first
func (r *photoRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user photos: %w", err)
	}
	defer rows.Close()
	return collectPhotos(rows)
}

func collectPhotos(rows pgx.Rows) ([]*models.Photo, error) {
	var photos []*models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}

// AddLike adds userID to the photo's like set
func (r *photoRepository) AddLike(ctx context.Context, photoID, userID string) error {
	query := `
		UPDATE photos SET likes = array_append(likes, $2)
		WHERE id = $1 AND NOT ($2 = ANY(likes))
	`
	if _, err := r.db.Exec(ctx, query, photoID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike removes userID from the photo's like set
func (r *photoRepository) RemoveLike(ctx context.Context, photoID, userID string) error {
	query := `UPDATE photos SET likes = array_remove(likes, $2) WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, photoID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// AppendComment appends a comment to the photo's comment list
func (r *photoRepository) AppendComment(ctx context.Context, photoID string, comment models.Comment) error {
	data, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	query := `UPDATE photos SET comments = comments || $2::jsonb WHERE id = $1`
	result, err := r.db.Exec(ctx, query, photoID, data)
	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
