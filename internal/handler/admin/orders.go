package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/orders"
)

// OrderHandler serves the back-office order screens.
type OrderHandler struct {
	orders   orders.Service
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewOrderHandler(orders orders.Service, renderer *handler.Renderer, cookies *cookie.Config) *OrderHandler {
	return &OrderHandler{orders: orders, renderer: renderer, cookies: cookies}
}

// List handles GET /admin/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.ListAll(r.Context())
	if err != nil {
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Orders"] = list
	h.renderer.RenderHTTP(w, "admin/orders", data)
}

// Detail handles GET /admin/orders/{id}.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Order"] = order
	h.renderer.RenderHTTP(w, "admin/order_detail", data)
}
