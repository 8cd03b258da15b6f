package http

import (
	"log/slog"
	"net/netip"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the deployment settings the router needs
type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
	TrustedProxies []netip.Prefix
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	correctionHandler CorrectionHandler,
	summaryHandler SummaryHandler,
	accessHandler AccessHandler,
	dashboardHandler DashboardHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(middleware.ClientIP(cfg.TrustedProxies))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// SSE authenticates with a short-lived token in the query string
		r.Get("/events", eventHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/events/token", eventHandler.GetSSEToken)
			r.Get("/access/client-ip", accessHandler.ClientIP)
			r.Get("/corrections", correctionHandler.List)

			// Employee only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEmployee)

				r.Post("/attendance/punch", attendanceHandler.Punch)
				r.Get("/attendance/status", attendanceHandler.GetStatus)
				r.Get("/attendance/my", attendanceHandler.GetMyAttendance)
				r.Post("/corrections", correctionHandler.Submit)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/attendance/records", func(r chi.Router) {
					r.Get("/", attendanceHandler.List)
					r.Get("/export", attendanceHandler.Export)
					r.Get("/{id}/photo", attendanceHandler.GetPhoto)
				})

				r.Put("/corrections/{id}", correctionHandler.Review)

				r.Route("/monthly-summary", func(r chi.Router) {
					r.Get("/", summaryHandler.List)
					r.Get("/export", summaryHandler.Export)
					r.Put("/{employeeID}", summaryHandler.SetOverride)
				})

				r.Get("/dashboard/summary", dashboardHandler.GetSummary)

				r.Get("/access/wifi-ips", accessHandler.ListWifiIPs)
				r.Post("/access/wifi-ips", accessHandler.AddWifiIP)
				r.Delete("/access/wifi-ips/{ip}", accessHandler.DeleteWifiIP)
				r.Get("/access/device-ips/{employeeID}", accessHandler.ListDeviceIPs)
				r.Post("/access/device-ips/{employeeID}", accessHandler.AddDeviceIP)
				r.Delete("/access/device-ips/{employeeID}/{ip}", accessHandler.DeleteDeviceIP)
			})
		})
	})
	return r
}
