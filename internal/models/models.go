package models

import "time"

// User represents an account. UserID is the stable identity assigned at
// sign-up; ID is the row id. Follow arrays hold UserIDs, while follow
// mutations address rows by ID.
type User struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Followers    []string  `json:"followers"`
	Following    []string  `json:"following"`
	CreatedAt    time.Time `json:"created_at"`
}

// Photo represents a photo owned by exactly one user. Likes holds the
// UserIDs of everyone who liked it. ImageURL is resolved at read time
// and never stored.
type Photo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ImageKey  string    `json:"image_key"`
	ImageURL  string    `json:"image_url,omitempty"`
	Caption   string    `json:"caption"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is embedded in a photo's comment list, in posting order.
type Comment struct {
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	PostedAt    time.Time `json:"posted_at"`
}

// TimelinePhoto is a photo annotated for a concrete viewer.
type TimelinePhoto struct {
	Photo
	Username       string `json:"username"`
	ViewerHasLiked bool   `json:"viewer_has_liked"`
}
