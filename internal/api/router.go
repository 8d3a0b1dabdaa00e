package api

import (
	"net/http"
	"time"
	"todo_api/internal/api/handler"
	"todo_api/internal/api/middleware"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/common/security"
	"todo_api/internal/logging"
	"todo_api/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	tokens *security.TokenManager,
	limiter *middleware.RateLimiter,
	authService *service.AuthService,
	userService *service.UserService,
	todoService *service.TodoService,
	log logging.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Parses the Authorization header into the context; rejection happens
	// later, in middleware.Authenticator, and only on protected routes.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	// Every response, including 404s for unknown routes, uses the envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "Route "+r.URL.Path+" not found")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService, log, cfg.IsDevelopment())
	userHandler := handler.NewUserHandler(userService, log, cfg.IsDevelopment())
	todoHandler := handler.NewTodoHandler(todoService, log, cfg.IsDevelopment())

	r.Route("/api", func(api chi.Router) {
		api.Use(limiter.Limit("api", cfg.APIRateLimit, cfg.APIRateWindow))

		api.Route("/auth", func(auth chi.Router) {
			auth.Group(func(g chi.Router) {
				g.Use(limiter.Limit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow))
				g.Post("/register", authHandler.Register)
				g.Post("/login", authHandler.Login)
			})
			// TODO: restrict to admins once a role model exists.
			auth.Get("/users", authHandler.ListUsers)
		})

		api.Route("/users", func(users chi.Router) {
			users.Get("/", userHandler.List)
			users.Get("/{id}", userHandler.Get)
		})

		api.Route("/todos", func(todos chi.Router) {
			todos.Use(middleware.Authenticator)
			todos.Get("/", todoHandler.List)
			todos.Get("/{id}", todoHandler.Get)

			todos.Group(func(g chi.Router) {
				g.Use(limiter.Limit("write", cfg.WriteRateLimit, cfg.WriteRateWindow))
				g.Post("/", todoHandler.Create)
				g.Put("/{id}", todoHandler.Update)
				g.Delete("/{id}", todoHandler.Delete)
			})
		})
	})

	return r
}
