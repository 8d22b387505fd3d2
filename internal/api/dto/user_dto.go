package dto

import "time"

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserSummary is the public projection of a user.
type UserSummary struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
}

// SubscribeRequest payload for supervisor subscriptions.
type SubscribeRequest struct {
	EmployeeEmail string `json:"employee_email"`
}

// NotificationResponse is a supervisor inbox entry.
type NotificationResponse struct {
	Body      string    `json:"body"`
	FromEmail string    `json:"from_email"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
