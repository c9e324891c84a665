package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/nmoreyra/cartelera/internal/cart"
	"github.com/nmoreyra/cartelera/internal/catalog"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/orders"
	"github.com/nmoreyra/cartelera/internal/session"
	"github.com/nmoreyra/cartelera/internal/telemetry"
)

func newTestRenderer(t *testing.T) *handler.Renderer {
	t.Helper()
	renderer, err := handler.NewRenderer("../../../web/templates")
	require.NoError(t, err)
	return renderer
}

func newTestMetrics() *telemetry.BusinessMetrics {
	return telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())
}

// serveAuthenticated runs the handler with a decoded session in the
// request context, the same shape the session middleware produces.
func serveAuthenticated(t *testing.T, h http.HandlerFunc, req *http.Request, user domain.User) *httptest.ResponseRecorder {
	t.Helper()

	codec := session.NewCodec("test-secret")
	cookies := cookie.NewConfig("cartelera_session", false, 3600)

	value, err := codec.Encode(&session.Session{Token: "test-token", User: user})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookies.Name, Value: value})

	w := httptest.NewRecorder()
	middleware.WithSession(codec, cookies)(h).ServeHTTP(w, req)
	return w
}

// mockCartService implements cart.Service with overridable funcs.
type mockCartService struct {
	loadFunc       func(ctx context.Context, userID int64) (*domain.Cart, error)
	addItemFunc    func(ctx context.Context, userID, movieID int64, quantity int) (*domain.Cart, error)
	updateItemFunc func(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)
	removeItemFunc func(ctx context.Context, userID, itemID int64) (*domain.Cart, error)
	clearFunc      func(ctx context.Context, userID int64) error
	checkoutFunc   func(ctx context.Context, userID int64, details domain.ShippingDetails, method domain.PaymentMethod) (*cart.CheckoutResult, error)
	completeFunc   func(ctx context.Context, userID int64) error
	snapshotFunc   func(userID int64) *domain.Cart
	forgetCalls    []int64
}

func (m *mockCartService) Load(ctx context.Context, userID int64) (*domain.Cart, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, userID)
	}
	return &domain.Cart{Items: []domain.CartItem{}}, nil
}

func (m *mockCartService) AddItem(ctx context.Context, userID, movieID int64, quantity int) (*domain.Cart, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, userID, movieID, quantity)
	}
	return &domain.Cart{}, nil
}

func (m *mockCartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, userID, itemID, quantity)
	}
	return &domain.Cart{}, nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error) {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, userID, itemID)
	}
	return &domain.Cart{}, nil
}

func (m *mockCartService) Clear(ctx context.Context, userID int64) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, userID)
	}
	return nil
}

func (m *mockCartService) Checkout(ctx context.Context, userID int64, details domain.ShippingDetails, method domain.PaymentMethod) (*cart.CheckoutResult, error) {
	if m.checkoutFunc != nil {
		return m.checkoutFunc(ctx, userID, details, method)
	}
	return &cart.CheckoutResult{Order: &domain.Order{ID: 1}}, nil
}

func (m *mockCartService) CompleteGatewayCheckout(ctx context.Context, userID int64) error {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, userID)
	}
	return nil
}

func (m *mockCartService) Snapshot(userID int64) *domain.Cart {
	if m.snapshotFunc != nil {
		return m.snapshotFunc(userID)
	}
	return nil
}

func (m *mockCartService) Forget(userID int64) {
	m.forgetCalls = append(m.forgetCalls, userID)
}

// mockCatalogService implements catalog.Service with overridable funcs.
type mockCatalogService struct {
	listFunc   func(ctx context.Context, q catalog.Query) ([]domain.Movie, error)
	getFunc    func(ctx context.Context, id int64) (*domain.Movie, error)
	createFunc func(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	updateFunc func(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockCatalogService) List(ctx context.Context, q catalog.Query) ([]domain.Movie, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockCatalogService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, domain.ErrMovieNotFound
}

func (m *mockCatalogService) Create(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, movie)
	}
	return &movie, nil
}

func (m *mockCatalogService) Update(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, movie)
	}
	return &movie, nil
}

func (m *mockCatalogService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockOrderService implements orders.Service with overridable funcs.
type mockOrderService struct {
	listFunc    func(ctx context.Context) ([]domain.Order, error)
	getFunc     func(ctx context.Context, id int64) (*domain.Order, error)
	listAllFunc func(ctx context.Context) ([]domain.Order, error)
	statsFunc   func(ctx context.Context) (*orders.Stats, error)
}

func (m *mockOrderService) List(ctx context.Context) ([]domain.Order, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockOrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockOrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockOrderService) Stats(ctx context.Context) (*orders.Stats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &orders.Stats{}, nil
}

// mockSessionService implements session.Service with overridable funcs.
type mockSessionService struct {
	loginFunc          func(ctx context.Context, creds domain.Credentials) (*session.Session, error)
	registerFunc       func(ctx context.Context, reg domain.Registration) (*session.Session, error)
	profileFunc        func(ctx context.Context) (*domain.User, error)
	updateProfileFunc  func(ctx context.Context, user domain.User) (*domain.User, error)
	changePasswordFunc func(ctx context.Context, current, updated string) error
}

func (m *mockSessionService) Login(ctx context.Context, creds domain.Credentials) (*session.Session, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, creds)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockSessionService) Register(ctx context.Context, reg domain.Registration) (*session.Session, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, reg)
	}
	return nil, domain.ErrEmailTaken
}

func (m *mockSessionService) Profile(ctx context.Context) (*domain.User, error) {
	if m.profileFunc != nil {
		return m.profileFunc(ctx)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockSessionService) UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, user)
	}
	return &user, nil
}

func (m *mockSessionService) ChangePassword(ctx context.Context, current, updated string) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, current, updated)
	}
	return nil
}
