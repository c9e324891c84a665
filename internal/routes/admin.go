package routes

import (
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/router"
)

// RegisterAdminRoutes registers the back-office routes. The backend
// enforces the admin role on every call as well; the gate here only
// keeps the UI honest.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(middleware.RequireAuth, middleware.RequireAdmin)

	admin.Get("/admin", deps.Dashboard.ServeHTTP)

	admin.Get("/admin/movies", deps.Movies.List)
	admin.Get("/admin/movies/new", deps.Movies.NewForm)
	admin.Post("/admin/movies", deps.Movies.Create)
	admin.Get("/admin/movies/{id}", deps.Movies.EditForm)
	admin.Post("/admin/movies/{id}", deps.Movies.Update)
	admin.Post("/admin/movies/{id}/delete", deps.Movies.Delete)

	admin.Get("/admin/orders", deps.Orders.List)
	admin.Get("/admin/orders/{id}", deps.Orders.Detail)

	admin.Get("/admin/users", deps.Users.List)
	admin.Post("/admin/users/{id}/delete", deps.Users.Delete)
}
