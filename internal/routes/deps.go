// Package routes maps URL space to handlers. Route registration is kept
// separate from handler construction so main stays a pure wiring file.
package routes

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/handler/admin"
	"github.com/nmoreyra/cartelera/internal/handler/storefront"
	"github.com/nmoreyra/cartelera/internal/middleware"
)

// StorefrontDeps carries the customer-facing handlers.
type StorefrontDeps struct {
	Home     http.Handler
	Movies   *storefront.MovieHandler
	Cart     *storefront.CartHandler
	Checkout *storefront.CheckoutHandler
	Auth     *storefront.AuthHandler
	Profile  *storefront.ProfileHandler
	Orders   *storefront.OrderHandler

	// AuthLimiter throttles credential submissions.
	AuthLimiter *middleware.RateLimiter
}

// AdminDeps carries the back-office handlers.
type AdminDeps struct {
	Dashboard http.Handler
	Movies    *admin.MovieHandler
	Orders    *admin.OrderHandler
	Users     *admin.UserHandler
}
