package domain

import "time"

// ============================================================
// Lawyer self-registration / login
// ============================================================

// RegisterRequest is the payload for lawyer self-registration.
type RegisterRequest struct {
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	City        string   `json:"city"`
	BarNumber   string   `json:"bar_number"`
	Specialties []string `json:"specialties,omitempty"`
}

// RegisterResponse confirms a created lawyer account.
type RegisterResponse struct {
	LawyerID string `json:"lawyer_id"`
	Email    string `json:"email"`
}

// LoginRequest carries lawyer credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	LawyerID     string `json:"lawyer_id"`
	FullName     string `json:"full_name,omitempty"`
}

// RefreshRequest carries a refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest carries a password change for the logged-in lawyer.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Credentials is the stored login state for a lawyer account.
type Credentials struct {
	LawyerID       string     `json:"lawyer_id"`
	PasswordHash   string     `json:"password_hash"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

// StoredRefreshToken is a hashed refresh token held by the data store.
type StoredRefreshToken struct {
	TokenHash string    `json:"token_hash"`
	LawyerID  string    `json:"lawyer_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
