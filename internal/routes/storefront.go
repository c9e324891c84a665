package routes

import (
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/router"
)

// RegisterStorefrontRoutes registers every customer-facing route.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// "/{$}" matches the root exactly; a bare "/" would swallow every
	// unmatched path.
	r.Get("/{$}", deps.Home.ServeHTTP)

	// Catalog browsing is public.
	r.Get("/movies", deps.Movies.List)
	r.Get("/movies/{id}", deps.Movies.Detail)

	// Credential submissions get the strict limiter.
	limited := deps.AuthLimiter.Middleware
	r.Get("/login", deps.Auth.LoginForm)
	r.Post("/login", deps.Auth.Login, limited)
	r.Get("/register", deps.Auth.RegisterForm)
	r.Post("/register", deps.Auth.Register, limited)
	r.Post("/logout", deps.Auth.Logout)

	// Everything below needs a signed-in customer.
	account := r.Group(middleware.RequireAuth)

	account.Get("/cart", deps.Cart.View)
	account.Post("/cart/items", deps.Cart.Add)
	account.Post("/cart/items/{id}", deps.Cart.Update)
	account.Post("/cart/items/{id}/delete", deps.Cart.Remove)
	account.Post("/cart/clear", deps.Cart.Clear)

	account.Get("/checkout", deps.Checkout.Page)
	account.Post("/checkout", deps.Checkout.Submit)
	account.Get("/checkout/confirmation", deps.Checkout.Confirmation)
	// Provider return URLs; paths are registered with the provider at
	// preference creation.
	account.Get("/checkout/success", deps.Checkout.Success)
	account.Get("/checkout/failure", deps.Checkout.Failure)
	account.Get("/checkout/pending", deps.Checkout.Pending)

	account.Get("/profile", deps.Profile.Show)
	account.Post("/profile", deps.Profile.Update)
	account.Post("/profile/password", deps.Profile.ChangePassword)

	account.Get("/orders", deps.Orders.List)
	account.Get("/orders/{id}", deps.Orders.Detail)
}
