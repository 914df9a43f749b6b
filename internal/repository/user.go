package repository

import (
	"context"
	"errors"
	"fmt"

	"gramline-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users. The follow arrays
// are mutated with single-statement set semantics: adding an id already
// present or removing one that is absent is a no-op.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ListProfiles(ctx context.Context, limit int) ([]*models.User, error)
	IsFollowing(ctx context.Context, username, targetUserID string) (bool, error)
	AddFollowing(ctx context.Context, docID, targetUserID string) error
	RemoveFollowing(ctx context.Context, docID, targetUserID string) error
	AddFollower(ctx context.Context, docID, followerUserID string) error
	RemoveFollower(ctx context.Context, docID, followerUserID string) error
}

type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, user_id, username, full_name, email, password_hash, followers, following, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.UserID, &user.Username, &user.FullName, &user.Email,
		&user.PasswordHash, &user.Followers, &user.Following, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, user_id, username, full_name, email, password_hash, followers, following, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.UserID, user.Username, user.FullName, user.Email,
		user.PasswordHash, user.Followers, user.Following, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUserID retrieves a user by their stable identity
func (r *userRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email address
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UsernameExists checks if a username is already taken. The match is
// exact, case-sensitive as stored.
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

// ListProfiles retrieves up to limit arbitrary users. Suggestion
// filtering happens in the service layer on top of this raw page.
func (r *userRepository) ListProfiles(ctx context.Context, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return users, nil
}

// IsFollowing reports whether the named user's following set contains
// targetUserID.
func (r *userRepository) IsFollowing(ctx context.Context, username, targetUserID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND $2 = ANY(following))`
	var following bool
	if err := r.db.QueryRow(ctx, query, username, targetUserID).Scan(&following); err != nil {
		return false, fmt.Errorf("failed to check follow status: %w", err)
	}
	return following, nil
}

// AddFollowing adds targetUserID to the following set of the row docID
func (r *userRepository) AddFollowing(ctx context.Context, docID, targetUserID string) error {
	query := `
		UPDATE users SET following = array_append(following, $2)
		WHERE id = $1 AND NOT ($2 = ANY(following))
	`
	if _, err := r.db.Exec(ctx, query, docID, targetUserID); err != nil {
		return fmt.Errorf("failed to add following: %w", err)
	}
	return nil
}

// RemoveFollowing removes targetUserID from the following set of the row docID
func (r *userRepository) RemoveFollowing(ctx context.Context, docID, targetUserID string) error {
	query := `UPDATE users SET following = array_remove(following, $2) WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, docID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove following: %w", err)
	}
	return nil
}

// AddFollower adds followerUserID to the followers set of the row docID
func (r *userRepository) AddFollower(ctx context.Context, docID, followerUserID string) error {
	query := `
		UPDATE users SET followers = array_append(followers, $2)
		WHERE id = $1 AND NOT ($2 = ANY(followers))
	`
	if _, err := r.db.Exec(ctx, query, docID, followerUserID); err != nil {
		return fmt.Errorf("failed to add follower: %w", err)
	}
	return nil
}

// RemoveFollower removes followerUserID from the followers set of the row docID
func (r *userRepository) RemoveFollower(ctx context.Context, docID, followerUserID string) error {
	query := `UPDATE users SET followers = array_remove(followers, $2) WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, docID, followerUserID); err != nil {
		return fmt.Errorf("failed to remove follower: %w", err)
	}
	return nil
}
