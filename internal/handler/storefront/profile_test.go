package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/session"
)

func newTestProfileHandler(t *testing.T, sessions *mockSessionService) (*ProfileHandler, *session.Codec) {
	t.Helper()
	codec := session.NewCodec("test-secret")
	cookies := cookie.NewConfig("cartelera_session", false, 3600)
	return NewProfileHandler(sessions, codec, cookies, newTestRenderer(t)), codec
}

func TestProfileShowFetchesFreshRecord(t *testing.T) {
	sessions := &mockSessionService{
		profileFunc: func(_ context.Context) (*domain.User, error) {
			// A fresher name than the cookie carries.
			return &domain.User{ID: 42, Name: "Ana María", Email: "ana@example.com"}, nil
		},
	}
	h, _ := newTestProfileHandler(t, sessions)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := serveAuthenticated(t, h.Show, req, domain.User{ID: 42, Name: "Ana"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana María")
}

func TestProfileUpdateReissuesCookie(t *testing.T) {
	sessions := &mockSessionService{
		updateProfileFunc: func(_ context.Context, user domain.User) (*domain.User, error) {
			assert.Equal(t, "Anita", user.Name)
			return &user, nil
		},
	}
	h, codec := newTestProfileHandler(t, sessions)

	form := url.Values{"name": {"Anita"}, "surname": {"García"}, "phone": {"123"}}
	req := postForm("/profile", form)
	w := serveAuthenticated(t, h.Update, req, domain.User{ID: 42, Name: "Ana"})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))

	var reissued *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "cartelera_session" && c.MaxAge > 0 {
			reissued = c
		}
	}
	require.NotNil(t, reissued, "expected a re-issued session cookie")

	sess, err := codec.Decode(reissued.Value)
	require.NoError(t, err)
	assert.Equal(t, "Anita", sess.User.Name)
	assert.Equal(t, "test-token", sess.Token)
}

func TestChangePasswordMismatchedConfirmation(t *testing.T) {
	sessions := &mockSessionService{
		changePasswordFunc: func(_ context.Context, _, _ string) error {
			t.Fatal("mismatched confirmation must not reach the backend")
			return nil
		},
	}
	h, _ := newTestProfileHandler(t, sessions)

	form := url.Values{
		"current_password": {"old"},
		"new_password":     {"new-secret"},
		"confirm_password": {"different"},
	}
	w := serveAuthenticated(t, h.ChangePassword, postForm("/profile/password", form), domain.User{ID: 42})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "do not match")
}

func TestChangePasswordWrongCurrentPassword(t *testing.T) {
	sessions := &mockSessionService{
		changePasswordFunc: func(_ context.Context, _, _ string) error {
			return &domain.Error{Code: domain.EFORBIDDEN, Message: "Current password is incorrect"}
		},
	}
	h, _ := newTestProfileHandler(t, sessions)

	form := url.Values{
		"current_password": {"wrong"},
		"new_password":     {"new-secret"},
		"confirm_password": {"new-secret"},
	}
	w := serveAuthenticated(t, h.ChangePassword, postForm("/profile/password", form), domain.User{ID: 42})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Current password is incorrect")
}

func TestChangePasswordSuccessShowsNotice(t *testing.T) {
	var gotCurrent, gotNew string
	sessions := &mockSessionService{
		changePasswordFunc: func(_ context.Context, current, updated string) error {
			gotCurrent, gotNew = current, updated
			return nil
		},
	}
	h, _ := newTestProfileHandler(t, sessions)

	form := url.Values{
		"current_password": {"old-secret"},
		"new_password":     {"new-secret"},
		"confirm_password": {"new-secret"},
	}
	w := serveAuthenticated(t, h.ChangePassword, postForm("/profile/password", form), domain.User{ID: 42})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password updated")
	assert.Equal(t, "old-secret", gotCurrent)
	assert.Equal(t, "new-secret", gotNew)
}
