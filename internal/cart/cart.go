// Package cart keeps a local snapshot of the server-held cart in sync
// and drives the one-way transition from cart to order.
//
// The backend is authoritative: every mutation sends a request and
// replaces the whole local snapshot with the response. Mutations for one
// session are serialized behind a per-session lock, so a rapid pair of
// clicks cannot overwrite newer server state with a stale response. A
// failed mutation leaves the previous snapshot untouched; nothing here is
// fatal, every operation is recoverable by user retry.
package cart

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/payment"
	"github.com/nmoreyra/cartelera/internal/telemetry"
)

// Service is the cart/order orchestrator. All operations require an
// authenticated context (bearer token present); the userID keys the
// per-session local state.
type Service interface {
	// Load fetches the authoritative cart. A backend "not found" is an
	// empty cart, not an error.
	Load(ctx context.Context, userID int64) (*domain.Cart, error)

	// AddItem adds a movie or increments its line, then replaces the
	// local snapshot with the backend's response.
	AddItem(ctx context.Context, userID, movieID int64, quantity int) (*domain.Cart, error)

	// UpdateItem sets a line's quantity. Quantity below one removes the
	// line, exactly as RemoveItem would.
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)

	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error)

	// Clear empties the cart on the backend and resets the local snapshot.
	Clear(ctx context.Context, userID int64) error

	// Checkout validates shipping details, then creates the order. Cash
	// orders clear the cart immediately; gateway orders stay pending and
	// return a provider redirect, leaving the cart untouched until the
	// provider confirms.
	Checkout(ctx context.Context, userID int64, details domain.ShippingDetails, method domain.PaymentMethod) (*CheckoutResult, error)

	// CompleteGatewayCheckout clears the cart once the provider reports
	// a gateway payment approved.
	CompleteGatewayCheckout(ctx context.Context, userID int64) error

	// Snapshot returns the current local snapshot without a network
	// call, or nil when the session has not loaded a cart yet.
	Snapshot(userID int64) *domain.Cart

	// Forget tears down the session's local state. Called on logout; the
	// server-held cart is left intact for the next sign-in.
	Forget(userID int64)
}

// CheckoutResult is what a successful checkout hands back to the caller.
type CheckoutResult struct {
	Order *domain.Order

	// RedirectURL is the provider's hosted checkout, set only for
	// gateway payment methods.
	RedirectURL string
}

// state is the per-session container. mu serializes every operation that
// touches the backend cart for this session.
type state struct {
	mu       sync.Mutex
	loaded   bool
	revision uint64
	cart     *domain.Cart
}

type orchestrator struct {
	client  *api.Client
	bridge  payment.Bridge
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
	baseURL string

	mu       sync.Mutex
	sessions map[int64]*state
}

// NewService creates the orchestrator. baseURL is this application's
// public URL, needed for the provider's back URLs.
func NewService(client *api.Client, bridge payment.Bridge, metrics *telemetry.BusinessMetrics, baseURL string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &orchestrator{
		client:   client,
		bridge:   bridge,
		metrics:  metrics,
		logger:   logger,
		baseURL:  baseURL,
		sessions: make(map[int64]*state),
	}
}

func (o *orchestrator) session(userID int64) *state {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.sessions[userID]
	if !ok {
		st = &state{}
		o.sessions[userID] = st
	}
	return st
}

// apply installs a backend snapshot after checking its arithmetic.
// Caller must hold st.mu.
func (o *orchestrator) apply(st *state, cart *domain.Cart) error {
	if err := cart.CheckInvariants(); err != nil {
		o.logger.Error("backend cart violates invariants", slog.String("error", err.Error()))
		return err
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	st.cart = cart
	st.loaded = true
	st.revision++
	return nil
}

func (o *orchestrator) Load(ctx context.Context, userID int64) (*domain.Cart, error) {
	if api.TokenFromContext(ctx) == "" {
		return nil, domain.ErrNotAuthenticated
	}

	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	var cart domain.Cart
	err := o.client.Get(ctx, "/cart", &cart)
	if domain.IsCode(err, domain.ENOTFOUND) {
		// No cart on the backend yet: an empty cart, not an error.
		cart = domain.Cart{}
		err = nil
	}
	if err != nil {
		o.count("load", "error")
		return nil, err
	}

	if err := o.apply(st, &cart); err != nil {
		o.count("load", "error")
		return nil, err
	}

	o.count("load", "ok")
	return st.cart, nil
}

type addItemRequest struct {
	MovieID  int64 `json:"movie_id"`
	Quantity int   `json:"quantity"`
}

func (o *orchestrator) AddItem(ctx context.Context, userID, movieID int64, quantity int) (*domain.Cart, error) {
	if api.TokenFromContext(ctx) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if quantity < domain.MinLineQuantity {
		return nil, domain.ErrInvalidQuantity
	}
	if quantity > domain.MaxLineQuantity {
		// The backend does not enforce the cap consistently.
		quantity = domain.MaxLineQuantity
	}

	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	var cart domain.Cart
	if err := o.client.Post(ctx, "/cart/items", addItemRequest{MovieID: movieID, Quantity: quantity}, &cart); err != nil {
		o.count("add_item", "error")
		return nil, err
	}

	if err := o.apply(st, &cart); err != nil {
		o.count("add_item", "error")
		return nil, err
	}

	o.count("add_item", "ok")
	return st.cart, nil
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (o *orchestrator) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if quantity < domain.MinLineQuantity {
		return o.RemoveItem(ctx, userID, itemID)
	}
	if api.TokenFromContext(ctx) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if quantity > domain.MaxLineQuantity {
		quantity = domain.MaxLineQuantity
	}

	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	var cart domain.Cart
	if err := o.client.Put(ctx, itemPath(itemID), updateItemRequest{Quantity: quantity}, &cart); err != nil {
		o.count("update_item", "error")
		return nil, err
	}

	if err := o.apply(st, &cart); err != nil {
		o.count("update_item", "error")
		return nil, err
	}

	o.count("update_item", "ok")
	return st.cart, nil
}

func (o *orchestrator) RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error) {
	if api.TokenFromContext(ctx) == "" {
		return nil, domain.ErrNotAuthenticated
	}

	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	var cart domain.Cart
	if err := o.client.Delete(ctx, itemPath(itemID), &cart); err != nil {
		o.count("remove_item", "error")
		return nil, err
	}

	if err := o.apply(st, &cart); err != nil {
		o.count("remove_item", "error")
		return nil, err
	}

	o.count("remove_item", "ok")
	return st.cart, nil
}

func (o *orchestrator) Clear(ctx context.Context, userID int64) error {
	if api.TokenFromContext(ctx) == "" {
		return domain.ErrNotAuthenticated
	}

	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := o.client.Post(ctx, "/cart/clear", nil, nil); err != nil {
		o.count("clear", "error")
		return err
	}

	if err := o.apply(st, &domain.Cart{}); err != nil {
		return err
	}

	o.count("clear", "ok")
	return nil
}

func (o *orchestrator) Snapshot(userID int64) *domain.Cart {
	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.loaded {
		return nil
	}

	snapshot := *st.cart
	snapshot.Items = append([]domain.CartItem(nil), st.cart.Items...)
	return &snapshot
}

func (o *orchestrator) Forget(userID int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.sessions, userID)
}

func (o *orchestrator) count(op, outcome string) {
	if o.metrics != nil {
		o.metrics.CartOperations.WithLabelValues(op, outcome).Inc()
	}
}

func itemPath(itemID int64) string {
	return "/cart/items/" + strconv.FormatInt(itemID, 10)
}
