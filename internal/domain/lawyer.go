// Package domain defines the core business entities for the Lexanova
// platform. These models are independent of external services and represent
// the canonical data structures used throughout the API.
package domain

import "time"

// Lawyer represents a registered tax-law attorney listed in the directory.
type Lawyer struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email,omitempty"`
	City        string    `json:"city"`
	BarNumber   string    `json:"bar_number,omitempty"`
	Specialties []string  `json:"specialties"`
	Bio         string    `json:"bio,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// LawyerFilter narrows a directory listing. Empty fields match everything.
type LawyerFilter struct {
	City      string
	Specialty string
	Query     string
}
