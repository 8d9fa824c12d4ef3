package authservice

import "time"

type RegisterRequest struct {
	Email    string
	Password string
	Username string
}

type RegisterResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Session is the authenticated identity extracted from a valid token.
type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}
