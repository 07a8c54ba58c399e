package domain

import "time"

// ContactMessage is an entry in the contact inbox, submitted from the
// public contact form and read by lawyers.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRequest is the public payload for submitting a message.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// SuccessResponse is a generic confirmation payload.
type SuccessResponse struct {
	Message string `json:"message"`
}
