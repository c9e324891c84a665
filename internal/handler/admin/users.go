package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
	"github.com/nmoreyra/cartelera/internal/users"
)

// UserHandler serves the back-office customer list.
type UserHandler struct {
	users    users.Service
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewUserHandler(users users.Service, renderer *handler.Renderer, cookies *cookie.Config) *UserHandler {
	return &UserHandler{users: users, renderer: renderer, cookies: cookies}
}

// List handles GET /admin/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Users"] = list
	h.renderer.RenderHTTP(w, "admin/users", data)
}

// Delete handles POST /admin/users/{id}/delete. Admins cannot delete
// their own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if id == sess.User.ID {
		http.Error(w, "You cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
