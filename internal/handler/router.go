// Package handler wires the HTTP surface of the Lexanova API.
package handler

import (
	"net/http"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services groups the service dependencies of the router. Store-backed
// services are nil when Supabase is not configured; their routes then
// answer 503 while the pure simulators keep working.
type Services struct {
	Simulator *service.SimulatorService
	Directory *service.DirectoryService
	Booking   *service.BookingService
	Content   *service.ContentService
	Inbox     *service.InboxService
	Auth      *service.AuthService
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Directory, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Tax simulators (pure, always available)
		// =============================================
		r.Route("/simulators", func(r chi.Router) {
			r.Post("/income-tax", incomeTaxHandler(svcs.Simulator, logger))
			r.Post("/donation", donationHandler(svcs.Simulator, logger))
			r.Post("/real-estate-gains", realEstateGainsHandler(svcs.Simulator, logger))
			r.Post("/securities-gains", securitiesGainsHandler(svcs.Simulator, logger))
			r.Post("/bare-ownership", bareOwnershipHandler(svcs.Simulator, logger))
			r.Post("/cehr", cehrHandler(svcs.Simulator, logger))
		})

		r.Get("/metrics/simulators", simulatorStatsHandler(svcs.Simulator, logger))

		// =============================================
		// Directory, availability & booking (public)
		// =============================================
		if svcs.Directory != nil && svcs.Booking != nil {
			r.Get("/lawyers", listLawyersHandler(svcs.Directory, logger))
			r.Get("/lawyers/{lawyerId}", getLawyerHandler(svcs.Directory, logger))
			r.Get("/lawyers/{lawyerId}/availability", availabilityHandler(svcs.Booking, logger))
			r.Post("/lawyers/{lawyerId}/appointments", bookAppointmentHandler(svcs.Booking, logger))
		} else {
			r.Handle("/lawyers", storeUnavailableHandler())
			r.Handle("/lawyers/*", storeUnavailableHandler())
		}

		// =============================================
		// Editorial content (public)
		// =============================================
		if svcs.Content != nil {
			r.Get("/articles", listArticlesHandler(svcs.Content, logger))
			r.Get("/articles/{slug}", getArticleHandler(svcs.Content, logger))
			r.Get("/posts", listPostsHandler(svcs.Content, logger))
			r.Get("/posts/{slug}", getPostHandler(svcs.Content, logger))
			r.Get("/case-studies", listCaseStudiesHandler(svcs.Content, logger))
			r.Get("/case-studies/{slug}", getCaseStudyHandler(svcs.Content, logger))
			r.Get("/resources", listResourcesHandler(svcs.Content, logger))
		}

		// =============================================
		// Contact form (public)
		// =============================================
		if svcs.Inbox != nil {
			r.Post("/contact", submitContactHandler(svcs.Inbox, logger))
		}

		// =============================================
		// Lawyer authentication
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			if svcs.Auth == nil {
				r.Handle("/*", storeUnavailableHandler())
				return
			}
			// Public routes
			r.Post("/register", authRegisterHandler(svcs.Auth, logger))
			r.Post("/login", authLoginHandler(svcs.Auth, logger))
			r.Post("/refresh", authRefreshHandler(svcs.Auth, logger))

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(svcs.Auth, logger))
				r.Post("/logout", authLogoutHandler(svcs.Auth, logger))
				r.Put("/password", authChangePasswordHandler(svcs.Auth, logger))
			})
		})

		// =============================================
		// Lawyer workspace (protected)
		// =============================================
		if svcs.Auth != nil && svcs.Booking != nil && svcs.Inbox != nil {
			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(svcs.Auth, logger))
				r.Get("/appointments", listMyAppointmentsHandler(svcs.Booking, logger))
				r.Patch("/appointments/{appointmentId}", updateAppointmentStatusHandler(svcs.Booking, logger))
				r.Get("/messages", listMessagesHandler(svcs.Inbox, logger))
				r.Post("/messages/{messageId}/read", markMessageReadHandler(svcs.Inbox, logger))
			})
		}
	})

	return r
}

func storeUnavailableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusServiceUnavailable, "service unavailable: Supabase not configured")
	}
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler(dirSvc *service.DirectoryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "lexanova-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if dirSvc != nil {
			start := time.Now()
			_, err := dirSvc.ListLawyers(ctx, domain.LawyerFilter{})
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
