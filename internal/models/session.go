package models

import "time"

// Session is the stored "current user" record. Its presence is the whole of
// the login state; it carries no expiry.
type Session struct {
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// LoginRequest holds credentials for opening a session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}
