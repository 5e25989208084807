package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sarmadH97/keeyu-task-board/internal/api"
	apiMiddleware "github.com/sarmadH97/keeyu-task-board/internal/api/middleware"
)

// setupRouter assembles the chi router: public auth endpoints, the
// authenticated board, column, and task API, and the admin-only user
// administration routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	boardHandler := api.NewBoardHandler(app.boardService, app.logger)
	columnHandler := api.NewColumnHandler(app.columnService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/boards", boardHandler.Create)
			r.Get("/boards", boardHandler.List)
			r.Get("/boards/{id}", boardHandler.Get)
			r.Put("/boards/{id}", boardHandler.Update)
			r.Delete("/boards/{id}", boardHandler.Delete)
			r.Post("/boards/{id}/move", boardHandler.Move)

			r.Post("/columns", columnHandler.Create)
			r.Get("/columns/{id}", columnHandler.Get)
			r.Put("/columns/{id}", columnHandler.Update)
			r.Delete("/columns/{id}", columnHandler.Delete)
			r.Post("/columns/{id}/move", columnHandler.Move)

			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
			r.Post("/tasks/{id}/move", taskHandler.Move)

			// User administration, admin role only.
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)
				r.Get("/admin/users", userHandler.List)
				r.Get("/admin/users/{id}", userHandler.Get)
				r.Delete("/admin/users/{id}", userHandler.Delete)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("writing health check response", "error", err)
		}
	})

	return r
}
