package storefront

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/session"
)

// ProfileHandler serves the account page: profile details and password
// changes.
type ProfileHandler struct {
	sessions session.Service
	codec    *session.Codec
	cookies  *cookie.Config
	renderer *handler.Renderer
}

func NewProfileHandler(sessions session.Service, codec *session.Codec, cookies *cookie.Config, renderer *handler.Renderer) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, codec: codec, cookies: cookies, renderer: renderer}
}

// Show handles GET /profile. The profile is fetched fresh rather than
// trusting the cookie copy.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Profile(r.Context())
	if err != nil {
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Profile"] = user
	h.renderer.RenderHTTP(w, "storefront/profile", data)
}

// Update handles POST /profile. The cookie is re-issued so the header
// greeting reflects the new name immediately.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.GetSession(ctx)
	logger := middleware.GetLogger(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	updated := sess.User
	updated.Name = r.FormValue("name")
	updated.Surname = r.FormValue("surname")
	updated.Phone = r.FormValue("phone")

	user, err := h.sessions.UpdateProfile(ctx, updated)
	if err != nil {
		h.renderShowError(w, r, &sess.User, "Could not update your profile. Please try again.")
		return
	}

	fresh := &session.Session{Token: sess.Token, User: *user}
	if value, err := h.codec.Encode(fresh); err != nil {
		logger.Error("failed to re-encode session after profile update", "error", err)
	} else {
		h.cookies.Set(w, value)
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// ChangePassword handles POST /profile/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.GetSession(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	current := r.FormValue("current_password")
	updated := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if updated == "" || updated != confirm {
		h.renderShowError(w, r, &sess.User, "New passwords do not match")
		return
	}

	if err := h.sessions.ChangePassword(ctx, current, updated); err != nil {
		if domain.IsCode(err, domain.EINVALID) || domain.IsCode(err, domain.EFORBIDDEN) {
			h.renderShowError(w, r, &sess.User, "Current password is incorrect")
			return
		}
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Profile"] = &sess.User
	data["Notice"] = "Password updated"
	h.renderer.RenderHTTP(w, "storefront/profile", data)
}

func (h *ProfileHandler) renderShowError(w http.ResponseWriter, r *http.Request, user *domain.User, msg string) {
	data := BaseTemplateData(r)
	data["Profile"] = user
	data["Error"] = msg
	w.WriteHeader(http.StatusBadRequest)
	h.renderer.RenderHTTP(w, "storefront/profile", data)
}
