package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/payment"
	"github.com/nmoreyra/cartelera/internal/telemetry"
)

// mockBridge implements payment.Bridge with overridable funcs.
type mockBridge struct {
	createPreferenceFunc func(ctx context.Context, params payment.PreferenceParams) (*payment.Preference, error)
	verifyPaymentFunc    func(ctx context.Context, paymentID string) (*payment.Verification, error)
}

func (m *mockBridge) CreatePreference(ctx context.Context, params payment.PreferenceParams) (*payment.Preference, error) {
	if m.createPreferenceFunc != nil {
		return m.createPreferenceFunc(ctx, params)
	}
	return &payment.Preference{ID: "pref-1", InitPoint: "https://pay.example.com/pref-1"}, nil
}

func (m *mockBridge) VerifyPayment(ctx context.Context, paymentID string) (*payment.Verification, error) {
	if m.verifyPaymentFunc != nil {
		return m.verifyPaymentFunc(ctx, paymentID)
	}
	return &payment.Verification{PaymentID: paymentID, Status: "approved"}, nil
}

type testBackend struct {
	server   *httptest.Server
	requests atomic.Int64
}

// newTestBackend wraps an httptest server and counts every request that
// reaches it.
func newTestBackend(t *testing.T, handler http.HandlerFunc) *testBackend {
	t.Helper()
	b := &testBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func newTestService(t *testing.T, backend *testBackend, bridge payment.Bridge) Service {
	t.Helper()
	client, err := api.NewClient(backend.server.URL, 5*time.Second, slog.Default())
	require.NoError(t, err)

	metrics := telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())
	if bridge == nil {
		bridge = &mockBridge{}
	}
	return NewService(client, bridge, metrics, "http://localhost:3000", slog.Default())
}

func authed(userID int64) context.Context {
	_ = userID
	return api.WithToken(context.Background(), "test-token")
}

func writeCart(w http.ResponseWriter, cart domain.Cart) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}

func oneItemCart() domain.Cart {
	return domain.Cart{
		Items: []domain.CartItem{
			{ID: 7, MovieID: 3, Title: "El Secreto", UnitPriceCents: 1500, Quantity: 2, LineSubtotal: 3000},
		},
		SubtotalCents: 3000,
		TaxesCents:    630,
		TotalCents:    3630,
		ItemCount:     2,
	}
}

func TestLoadRequiresAuthentication(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeCart(w, oneItemCart())
	})
	svc := newTestService(t, backend, nil)

	_, err := svc.Load(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, int64(0), backend.requests.Load(), "unauthenticated load must not reach the backend")
}

func TestLoadMissingCartIsEmpty(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Cart not found"}`, http.StatusNotFound)
	})
	svc := newTestService(t, backend, nil)

	cart, err := svc.Load(authed(1), 1)

	require.NoError(t, err)
	assert.True(t, cart.Empty())
	assert.Empty(t, cart.Items)
}

func TestLoadReplacesSnapshot(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeCart(w, oneItemCart())
	})
	svc := newTestService(t, backend, nil)

	cart, err := svc.Load(authed(1), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3630), cart.TotalCents)

	snapshot := svc.Snapshot(1)
	require.NotNil(t, snapshot)
	assert.Equal(t, cart.TotalCents, snapshot.TotalCents)
}

func TestSnapshotBeforeLoadIsNil(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	svc := newTestService(t, backend, nil)

	assert.Nil(t, svc.Snapshot(42))
	assert.Equal(t, int64(0), backend.requests.Load())
}

func TestAddItemQuantityBounds(t *testing.T) {
	var gotQuantity int
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MovieID  int64 `json:"movie_id"`
			Quantity int   `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotQuantity = req.Quantity
		writeCart(w, oneItemCart())
	})
	svc := newTestService(t, backend, nil)

	_, err := svc.AddItem(authed(1), 1, 3, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(0), backend.requests.Load(), "rejected quantity must not reach the backend")

	_, err = svc.AddItem(authed(1), 1, 3, 99)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxLineQuantity, gotQuantity, "oversized quantity should be clamped")
}

func TestUpdateItemZeroQuantityRemoves(t *testing.T) {
	var method string
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.Equal(t, "/cart/items/7", r.URL.Path)
		writeCart(w, domain.Cart{})
	})
	svc := newTestService(t, backend, nil)

	cart, err := svc.UpdateItem(authed(1), 1, 7, 0)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, method)
	assert.True(t, cart.Empty())
}

func TestUpdateItemRecomputesTotalsFromResponse(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cart/items/7", r.URL.Path)

		var req struct {
			Quantity int `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.Quantity)

		writeCart(w, domain.Cart{
			Items: []domain.CartItem{
				{ID: 7, MovieID: 3, Title: "El Secreto", UnitPriceCents: 1000, Quantity: 3, LineSubtotal: 3000},
			},
			SubtotalCents: 3000,
			TaxesCents:    630,
			TotalCents:    3630,
			ItemCount:     3,
		})
	})
	svc := newTestService(t, backend, nil)

	cart, err := svc.UpdateItem(authed(1), 1, 7, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(1), backend.requests.Load(), "one update is one backend request")
	assert.Equal(t, int64(3000), cart.Items[0].LineSubtotal)
	assert.Equal(t, int64(3630), cart.TotalCents)
	assert.Equal(t, 3, cart.ItemCount)

	snapshot := svc.Snapshot(1)
	require.NotNil(t, snapshot)
	assert.Equal(t, int64(3630), snapshot.TotalCents)
}

func TestFailedMutationKeepsPriorSnapshot(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/cart":
			writeCart(w, oneItemCart())
		default:
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
		}
	})
	svc := newTestService(t, backend, nil)

	_, err := svc.Load(authed(1), 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(authed(1), 1, 7, 3)
	assert.True(t, domain.IsCode(err, domain.EINTERNAL))

	// The authoritative snapshot from before the failure survives intact.
	snapshot := svc.Snapshot(1)
	require.NotNil(t, snapshot)
	assert.Equal(t, int64(3630), snapshot.TotalCents)
	assert.Equal(t, 2, snapshot.Items[0].Quantity)
}

func TestClearEmptiesSnapshot(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart":
			writeCart(w, oneItemCart())
		case "/cart/clear":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	svc := newTestService(t, backend, nil)

	_, err := svc.Load(authed(1), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(authed(1), 1))

	snapshot := svc.Snapshot(1)
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.Empty())
}

func TestInvalidBackendSnapshotRejected(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		// Totals that do not add up must never become the local snapshot.
		writeCart(w, domain.Cart{
			Items:         []domain.CartItem{{ID: 1, MovieID: 2, Quantity: 1, UnitPriceCents: 100, LineSubtotal: 100}},
			SubtotalCents: 100,
			TaxesCents:    21,
			TotalCents:    9999,
			ItemCount:     1,
		})
	})
	svc := newTestService(t, backend, nil)

	_, err := svc.Load(authed(1), 1)

	assert.Error(t, err)
	assert.Nil(t, svc.Snapshot(1))
}

func TestForgetDropsLocalStateOnly(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeCart(w, oneItemCart())
	})
	svc := newTestService(t, backend, nil)

	_, err := svc.Load(authed(1), 1)
	require.NoError(t, err)
	require.NotNil(t, svc.Snapshot(1))

	before := backend.requests.Load()
	svc.Forget(1)

	assert.Nil(t, svc.Snapshot(1))
	assert.Equal(t, before, backend.requests.Load(), "forget is purely local")
}
