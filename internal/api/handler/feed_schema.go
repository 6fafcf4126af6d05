package handler

import (
	"github.com/feedstream/feed-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error   string                  `json:"error"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=5"`
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// --- Feed ---

type postRequest struct {
	Title    string `json:"title"   validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=5"`
	ImageURL string `json:"image_url"`
}

type postResponse struct {
	Message string       `json:"message"`
	Post    *domain.Post `json:"post"`
}

type listPostsResponse struct {
	Message    string         `json:"message"`
	Posts      []*domain.Post `json:"posts"`
	TotalItems int64          `json:"totalItems"`
}
