package storefront

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/cart"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
)

// CartHandler serves the cart page and its mutations. All routes sit
// behind authentication.
type CartHandler struct {
	carts    cart.Service
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewCartHandler(carts cart.Service, renderer *handler.Renderer, cookies *cookie.Config) *CartHandler {
	return &CartHandler{carts: carts, renderer: renderer, cookies: cookies}
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	loaded, err := h.carts.Load(r.Context(), sess.User.ID)
	if err != nil {
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Cart"] = loaded
	h.renderer.RenderHTTP(w, "storefront/cart", data)
}

// Add handles POST /cart/items.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	movieID, err := strconv.ParseInt(r.FormValue("movie_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid movie", http.StatusBadRequest)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		quantity = 1
	}

	if _, err := h.carts.AddItem(r.Context(), sess.User.ID, movieID, quantity); err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			http.Error(w, "Invalid quantity", http.StatusBadRequest)
			return
		}
		HandleError(w, r, h.cookies, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Update handles POST /cart/items/{id}. A quantity below one removes
// the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	if _, err := h.carts.UpdateItem(r.Context(), sess.User.ID, itemID, quantity); err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		HandleError(w, r, h.cookies, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove handles POST /cart/items/{id}/delete.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.carts.RemoveItem(r.Context(), sess.User.ID, itemID); err != nil &&
		!errors.Is(err, domain.ErrCartItemNotFound) {
		HandleError(w, r, h.cookies, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Clear handles POST /cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if err := h.carts.Clear(r.Context(), sess.User.ID); err != nil {
		HandleError(w, r, h.cookies, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
