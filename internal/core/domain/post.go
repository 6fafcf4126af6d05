package domain

import "time"

// MinTextLength is the minimum length accepted for post titles, post
// content, and passwords.
const MinTextLength = 5

// Post is the core aggregate of the feed. Creator is immutable after
// creation; a post id lives in exactly one user's Posts list — the
// creator's.
type Post struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	Creator   string    `json:"creator" bson:"creator"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// AuthContext is the caller identity derived by token verification.
// IsAuth false means the request carried no usable token; the domain
// services decide whether that matters for a given operation.
type AuthContext struct {
	UserID string
	Email  string
	IsAuth bool
}

// Anonymous is the context used for requests without a valid token.
func Anonymous() AuthContext {
	return AuthContext{}
}
