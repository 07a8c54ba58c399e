// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
)

// DirectoryStore retrieves lawyer directory data.
type DirectoryStore interface {
	ListLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.Lawyer, error)
	GetLawyer(ctx context.Context, lawyerID string) (*domain.Lawyer, error)
}

// BookingStore persists availability windows and appointments.
type BookingStore interface {
	ListWindows(ctx context.Context, lawyerID string) ([]domain.AvailabilityWindow, error)

	// ListActiveAppointments returns only pending/confirmed appointments,
	// the ones that occupy their slot.
	ListActiveAppointments(ctx context.Context, lawyerID string) ([]domain.Appointment, error)
	ListAppointments(ctx context.Context, lawyerID string) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	CreateAppointment(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, status domain.AppointmentStatus) error
}

// ContentStore retrieves editorial content.
type ContentStore interface {
	ListArticles(ctx context.Context, category string) ([]domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error)
	GetCaseStudyBySlug(ctx context.Context, slug string) (*domain.CaseStudy, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
}

// InboxStore persists contact messages.
type InboxStore interface {
	CreateMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
	ListMessages(ctx context.Context, unreadOnly bool, page, pageSize int) ([]domain.ContactMessage, error)
	MarkMessageRead(ctx context.Context, messageID string) error
}

// AuthStore defines data operations for lawyer authentication.
type AuthStore interface {
	GetLawyerByEmail(ctx context.Context, email string) (*domain.Lawyer, error)
	GetLawyerByID(ctx context.Context, lawyerID string) (*domain.Lawyer, error)
	CreateLawyerWithCredentials(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.RegisterResponse, error)

	GetCredentials(ctx context.Context, lawyerID string) (*domain.Credentials, error)
	UpdateCredentials(ctx context.Context, lawyerID string, updates map[string]any) error

	StoreRefreshToken(ctx context.Context, lawyerID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.StoredRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, lawyerID string) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
