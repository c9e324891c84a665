package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/session"
)

func testCookieConfig() *cookie.Config {
	return cookie.NewConfig("cartelera_session", false, 3600)
}

func TestWithSessionValidCookie(t *testing.T) {
	codec := session.NewCodec("secret")
	cookies := testCookieConfig()

	value, err := codec.Encode(&session.Session{
		Token: "backend-token",
		User:  domain.User{ID: 3, Name: "Ana", Role: domain.RoleCustomer},
	})
	require.NoError(t, err)

	var gotSession *session.Session
	var gotToken string
	handler := WithSession(codec, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = GetSession(r.Context())
		gotToken = api.TokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: cookies.Name, Value: value})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, gotSession)
	assert.Equal(t, int64(3), gotSession.User.ID)
	assert.Equal(t, "backend-token", gotToken)
}

func TestWithSessionTamperedCookieCleared(t *testing.T) {
	codec := session.NewCodec("secret")
	cookies := testCookieConfig()

	var gotSession *session.Session
	handler := WithSession(codec, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = GetSession(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: cookies.Name, Value: "garbage.signature"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Nil(t, gotSession, "request continues unauthenticated")

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == cookies.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "tampered cookie should be cleared")
}

func TestRequireAuthRedirectsWithReturnTo(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run unauthenticated")
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders?page=2", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?return_to=/orders?page=2", w.Header().Get("Location"))
}

func TestRequireAdmin(t *testing.T) {
	codec := session.NewCodec("secret")
	cookies := testCookieConfig()

	newRequest := func(role string) *http.Request {
		value, err := codec.Encode(&session.Session{
			Token: "t",
			User:  domain.User{ID: 1, Role: role},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: cookies.Name, Value: value})
		return req
	}

	var called bool
	handler := WithSession(codec, cookies)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest(domain.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest(domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
