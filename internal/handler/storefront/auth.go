package storefront

import (
	"errors"
	"net/http"

	"github.com/nmoreyra/cartelera/internal/cart"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/session"
	"github.com/nmoreyra/cartelera/internal/telemetry"
)

// AuthHandler serves login, registration and logout.
type AuthHandler struct {
	sessions session.Service
	carts    cart.Service
	codec    *session.Codec
	cookies  *cookie.Config
	metrics  *telemetry.BusinessMetrics
	renderer *handler.Renderer
}

func NewAuthHandler(
	sessions session.Service,
	carts cart.Service,
	codec *session.Codec,
	cookies *cookie.Config,
	metrics *telemetry.BusinessMetrics,
	renderer *handler.Renderer,
) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		carts:    carts,
		codec:    codec,
		cookies:  cookies,
		metrics:  metrics,
		renderer: renderer,
	}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := BaseTemplateData(r)
	data["Email"] = ""
	data["ReturnTo"] = safeReturnTo(r.URL.Query().Get("return_to"))
	h.renderer.RenderHTTP(w, "storefront/login", data)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	creds := domain.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	returnTo := safeReturnTo(r.FormValue("return_to"))

	sess, err := h.sessions.Login(ctx, creds)
	if err != nil {
		h.metrics.LoginFailed.Inc()
		var msg string
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			msg = "Invalid email or password"
		case domain.IsValidationError(err):
			msg = "Please enter your email and password"
		default:
			logger.Error("login failed", "error", err)
			msg = "Could not sign in. Please try again."
		}

		data := BaseTemplateData(r)
		data["Error"] = msg
		data["Email"] = creds.Email
		data["ReturnTo"] = returnTo
		w.WriteHeader(handler.ErrorStatus(err))
		h.renderer.RenderHTTP(w, "storefront/login", data)
		return
	}

	if err := h.setSessionCookie(w, sess); err != nil {
		logger.Error("failed to encode session", "error", err)
		http.Error(w, "Could not sign in", http.StatusInternalServerError)
		return
	}

	h.metrics.Logins.Inc()
	logger.Info("user signed in", "user_id", sess.User.ID)
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := BaseTemplateData(r)
	data["Form"] = domain.Registration{}
	h.renderer.RenderHTTP(w, "storefront/register", data)
}

// Register handles POST /register. A successful registration signs the
// new account in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	reg := domain.Registration{
		Name:     r.FormValue("name"),
		Surname:  r.FormValue("surname"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
	}

	sess, err := h.sessions.Register(ctx, reg)
	if err != nil {
		var msg string
		switch {
		case domain.IsValidationError(err):
			msg = "Please fill in all required fields"
		case domain.IsCode(err, domain.ECONFLICT):
			msg = "An account with this email already exists"
		default:
			logger.Error("registration failed", "error", err)
			msg = "Could not create your account. Please try again."
		}

		data := BaseTemplateData(r)
		data["Error"] = msg
		data["Form"] = reg
		w.WriteHeader(handler.ErrorStatus(err))
		h.renderer.RenderHTTP(w, "storefront/register", data)
		return
	}

	if err := h.setSessionCookie(w, sess); err != nil {
		logger.Error("failed to encode session", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.metrics.Signups.Inc()
	logger.Info("user registered", "user_id", sess.User.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. Local state only: the cookie is dropped
// and the in-memory cart snapshot discarded, while the server-held cart
// survives for the next sign-in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.GetSession(r.Context()); sess != nil {
		h.carts.Forget(sess.User.ID)
	}
	h.cookies.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sess *session.Session) error {
	value, err := h.codec.Encode(sess)
	if err != nil {
		return err
	}
	h.cookies.Set(w, value)
	return nil
}

// safeReturnTo keeps post-login redirects on this site.
func safeReturnTo(target string) string {
	if target == "" || target[0] != '/' || (len(target) > 1 && target[1] == '/') {
		return "/"
	}
	return target
}
