package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/config"
	"github.com/seekers-automation/mes-hr-backend-go/internal/handler/http/middleware"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Admin        AdminHandler
	Broadcast    BroadcastHandler
	Holiday      HolidayHandler
	Profile      ProfileHandler
	Notification NotificationHandler
	Document     DocumentHandler
	Audit        AuditHandler
	Report       ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "mes-hr-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Locally stored uploads (profile photos)
	fileServer := http.FileServer(http.Dir(cfg.Storage.BasePath))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/verify-email", h.Auth.VerifyEmail)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)

			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// SSE stream authenticates via a short-lived query token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/change-password", h.Auth.ChangePassword)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.Get)
				r.Put("/", h.Profile.Update)
				r.Post("/photo", h.Profile.UploadPhoto)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/mark", h.Attendance.Mark)
				r.Get("/my", h.Attendance.MyRecords)
				r.Get("/my/summary", h.Attendance.MySummary)
				r.Patch("/{id}", h.Attendance.Checkout)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/all", h.Attendance.List)
					r.Get("/summary", h.Attendance.Summary)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.MyRequests)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.List)
					r.Put("/admin/approve/{id}", h.Leave.Approve)
					r.Put("/admin/reject/{id}", h.Leave.Reject)
				})
			})

			r.Route("/broadcasts", func(r chi.Router) {
				r.Get("/", h.Broadcast.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Broadcast.Create)
					r.Delete("/{id}", h.Broadcast.Delete)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", h.Document.Upload)
				r.Get("/", h.Document.List)
				r.Get("/{id}/download", h.Document.Download)
				r.Delete("/{id}", h.Document.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/settings", h.Notification.GetSettings)
				r.Put("/settings", h.Notification.UpdateSettings)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/admin/users", func(r chi.Router) {
					r.Get("/", h.Admin.ListUsers)
					r.Get("/pending", h.Admin.ListPending)
					r.Post("/approve", h.Admin.ApproveUser)
					r.Post("/reject", h.Admin.RejectUser)
					r.Delete("/{id}", h.Admin.DeleteUser)
				})

				r.Get("/admin/audit-logs", h.Audit.List)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/attendance", h.Report.ExportAttendance)
					r.Get("/holidays", h.Report.ExportHolidays)
				})
			})
		})
	})

	return r
}
