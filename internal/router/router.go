package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/GregMSThompson/attendance-backend/internal/handlers"
	"github.com/GregMSThompson/attendance-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))
	r.Use(chimiddleware.RequestID)
	r.Use(httplog.RequestLogger(deps.Log, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chimiddleware.CleanPath)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	hh := handlers.NewHealthHandlers(deps)
	ush := handlers.NewUserHandlers(deps)
	ath := handlers.NewAttendanceHandlers(deps)
	adh := handlers.NewAdminHandlers(deps)

	r.Get("/", hh.Root)
	r.Get("/health", hh.Health)

	r.Route("/api", func(r chi.Router) {
		var mw *middleware.Middleware
		if deps.Firebase != nil {
			mw = middleware.NewMiddleware(deps.Firebase, deps.UserSvc, deps.ResponseHandler)
			r.Use(mw.FirebaseAuth)
		}

		r.Mount("/users", ush.UserRoutes())
		r.Mount("/attendance", ath.AttendanceRoutes())
		r.Group(func(r chi.Router) {
			if mw != nil {
				r.Use(mw.RequireAdmin)
			}
			r.Mount("/admin", adh.AdminRoutes())
		})
	})

	return r
}
