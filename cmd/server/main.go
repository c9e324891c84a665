package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nmoreyra/cartelera/internal"
	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/cart"
	"github.com/nmoreyra/cartelera/internal/catalog"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/handler/admin"
	"github.com/nmoreyra/cartelera/internal/handler/storefront"
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/orders"
	"github.com/nmoreyra/cartelera/internal/payment"
	"github.com/nmoreyra/cartelera/internal/router"
	"github.com/nmoreyra/cartelera/internal/routes"
	"github.com/nmoreyra/cartelera/internal/session"
	"github.com/nmoreyra/cartelera/internal/telemetry"
	"github.com/nmoreyra/cartelera/internal/users"
)

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Gateway client for the remote storefront backend.
	client, err := api.NewClient(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		logger,
	)
	if err != nil {
		return fmt.Errorf("backend client initialization failed: %w", err)
	}

	// Metrics: HTTP layer plus business counters.
	httpMetrics := middleware.NewMetrics("cartelera")
	business := telemetry.NewBusinessMetrics("cartelera", prometheus.DefaultRegisterer)

	// Services.
	bridge := payment.NewBridge(client, logger)
	carts := cart.NewService(client, bridge, business, cfg.BaseURL, logger)
	catalogSvc := catalog.NewService(client)
	orderSvc := orders.NewService(client)
	userSvc := users.NewService(client)
	sessionSvc := session.NewService(client)

	// Session cookie plumbing.
	codec := session.NewCodec(cfg.SessionSecret)
	cookies := cookie.NewConfig(cfg.Cookie.Name, cfg.Cookie.Secure, cfg.Cookie.MaxAgeSeconds)

	// Templates.
	renderer, err := handler.NewRenderer(cfg.TemplatesDir)
	if err != nil {
		return fmt.Errorf("template initialization failed: %w", err)
	}

	// Handlers.
	storefrontDeps := routes.StorefrontDeps{
		Home:        storefront.NewHomeHandler(catalogSvc, renderer),
		Movies:      storefront.NewMovieHandler(catalogSvc, renderer, cookies),
		Cart:        storefront.NewCartHandler(carts, renderer, cookies),
		Checkout:    storefront.NewCheckoutHandler(carts, orderSvc, bridge, business, renderer, cookies),
		Auth:        storefront.NewAuthHandler(sessionSvc, carts, codec, cookies, business, renderer),
		Profile:     storefront.NewProfileHandler(sessionSvc, codec, cookies, renderer),
		Orders:      storefront.NewOrderHandler(orderSvc, renderer, cookies),
		AuthLimiter: middleware.NewRateLimiter(middleware.StrictRateLimiterConfig()),
	}
	adminDeps := routes.AdminDeps{
		Dashboard: admin.NewDashboardHandler(orderSvc, renderer, cookies),
		Movies:    admin.NewMovieHandler(catalogSvc, renderer, cookies),
		Orders:    admin.NewOrderHandler(orderSvc, renderer, cookies),
		Users:     admin.NewUserHandler(userSvc, renderer, cookies),
	}

	defaultLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	r := router.New(
		middleware.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		defaultLimiter.Middleware,
		middleware.WithSession(codec, cookies),
		middleware.WithRequestLogger(logger),
	)

	r.Static("/static/", "./web/static")

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		httpMetrics.Handler().ServeHTTP(w, req)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting storefront server", "address", addr, "backend", cfg.Backend.URL)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
