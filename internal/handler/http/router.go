package http

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/salesverse/salesverse-backend-go/internal/handler/http/middleware"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	FrontendURL string
	RateLimit   string
	LogLevel    slog.Level
}

func NewRouter(
	cfg RouterConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	authHandler AuthHandler,
	saleHandler SaleHandler,
	dailyLogHandler DailyLogHandler,
	streamHandler StreamHandler,
) (*chi.Mux, error) {
	rateLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(rateLimit)

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Event stream, token may come from the query string
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService))
			r.Get("/events/metrics", streamHandler.Metrics)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/daily-logs", func(r chi.Router) {
				r.Get("/leaderboard", dailyLogHandler.Leaderboard)
				r.Get("/me/today", dailyLogHandler.Today)
				r.Get("/chart", dailyLogHandler.MyChart)
				r.Patch("/shift-duration", dailyLogHandler.SetShiftDuration)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/employees/{employeeID}", dailyLogHandler.EmployeeHistory)
					r.Get("/employees/{employeeID}/chart", dailyLogHandler.EmployeeChart)
					r.Post("/employees/{employeeID}/{date}/recompute", dailyLogHandler.Recompute)
				})
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", saleHandler.ListMine)
				r.Post("/", saleHandler.Create)
				r.Get("/date/{date}", saleHandler.ListByDate)
				r.Get("/{id}", saleHandler.Get)
				r.Put("/{id}", saleHandler.Edit)
				r.Delete("/{id}", saleHandler.Delete)
			})
		})
	})
	return r, nil
}

// NewRequestLogger builds the ECS-formatted JSON logger used for request logs.
func NewRequestLogger(appName, version, env string, w io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", version),
		slog.String("env", env),
	)
}
