package domain

import "time"

// DefaultStatus is the status assigned to every freshly registered user.
const DefaultStatus = "I am new!"

// User models a registered account. PasswordHash never leaves the process:
// the json tag keeps it out of every adapter response.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Status       string    `json:"status" bson:"status"`
	Posts        []string  `json:"posts" bson:"posts"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// NewUser builds a user with the default status and server-assigned
// timestamps. Posts starts empty but non-nil so it always serializes as a
// JSON array.
func NewUser(email, name, passwordHash string, now time.Time) *User {
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Status:       DefaultStatus,
		Posts:        []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
