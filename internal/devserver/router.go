package devserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linemk/coffee-shop/internal/lib/logger/handlers/urllog"
)

// New assembles the full /coffee API surface. Menus and categories are
// readable without a token, user registration and token issuance are public,
// everything that mutates the catalog requires the ADMIN role.
func New(log *slog.Logger, store *Store, secret string, ttl time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(urllog.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Route("/coffee", func(r chi.Router) {
		r.Post("/auth/token", TokenHandler(log, store, secret, ttl))
		r.Post("/users", CreateUserHandler(log, store))
		r.Get("/menus", ListMenusHandler(log, store))
		r.Get("/categories", ListCategoriesHandler(log, store))

		r.Group(func(r chi.Router) {
			r.Use(Auth(secret))

			r.Get("/users/myInfo", MyInfoHandler(log, store))
			r.Post("/orders", CreateOrderHandler(log, store))

			r.Group(func(r chi.Router) {
				r.Use(AdminOnly)

				r.Get("/users", ListUsersHandler(log, store))
				r.Put("/users/{id}", UpdateUserHandler(log, store))
				r.Delete("/users/{id}", DeleteUserHandler(log, store))

				r.Post("/menus", CreateMenuHandler(log, store))
				r.Put("/menus/{id}", UpdateMenuHandler(log, store))
				r.Delete("/menus/{id}", DeleteMenuHandler(log, store))

				r.Post("/categories", CreateCategoryHandler(log, store))
				r.Put("/categories/{id}", UpdateCategoryHandler(log, store))
				r.Delete("/categories/{id}", DeleteCategoryHandler(log, store))
			})
		})
	})

	return r
}
