package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-access-admin/internal/config"
	"go-access-admin/internal/handler"
	"go-access-admin/internal/middleware"
	"go-access-admin/internal/websocket"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Employee  *handler.EmployeeHandler
	AccessLog *handler.AccessLogHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	handlers Handlers,
	hub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireAuth := authMiddleware.RequireAuth
	requireAdmin := authMiddleware.RequireAdmin

	r.Route("/auth", func(auth chi.Router) {
		auth.Use(middleware.Timeout(cfg.RequestTimeout))
		auth.Post("/login", handlers.Auth.Login)
		auth.With(requireAuth).Get("/", handlers.Auth.Session)
		auth.Delete("/logout", handlers.Auth.Logout)
	})

	r.Route("/users", func(users chi.Router) {
		users.Use(middleware.Timeout(cfg.RequestTimeout), requireAuth, requireAdmin)
		users.Get("/", handlers.User.List)
		users.Post("/", handlers.User.Add)
		users.Delete("/{id}", handlers.User.Delete)
		users.Put("/{id}/password", handlers.User.SetPassword)
		users.Put("/{id}/accessLayer", handlers.User.SetAccessLayer)
	})

	r.Route("/employees", func(employees chi.Router) {
		employees.Use(middleware.Timeout(cfg.RequestTimeout), requireAuth, requireAdmin)
		employees.Get("/", handlers.Employee.List)
		employees.Post("/", handlers.Employee.Add)
		employees.Get("/{id}", handlers.Employee.Get)
		employees.Put("/{id}", handlers.Employee.Update)
		employees.Delete("/{id}", handlers.Employee.Delete)
	})

	r.Route("/accessLogs", func(logs chi.Router) {
		logs.Use(middleware.Timeout(cfg.RequestTimeout))
		logs.With(requireAuth).Get("/", handlers.AccessLog.List)
		logs.With(requireAuth, requireAdmin).Post("/", handlers.AccessLog.Record)
	})

	// Live-update socket: one long-lived connection per dashboard, admin
	// only. No timeout middleware here; the connection is expected to stay
	// open.
	r.With(requireAuth, requireAdmin).Get("/notify", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWS(hub, w, r)
	})

	photoServer := http.StripPrefix("/static/employees/", http.FileServer(http.Dir(cfg.PhotoRoot)))
	r.With(requireAuth).Get("/static/employees/*", photoServer.ServeHTTP)

	thumbServer := http.StripPrefix("/static/thumbnails/", http.FileServer(http.Dir(cfg.ThumbnailRoot)))
	r.With(requireAuth).Get("/static/thumbnails/*", thumbServer.ServeHTTP)

	return r
}
