package admin

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/orders"
)

// DashboardHandler renders the back-office landing page with sales
// statistics aggregated from the full order listing.
type DashboardHandler struct {
	orders   orders.Service
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewDashboardHandler(orders orders.Service, renderer *handler.Renderer, cookies *cookie.Config) *DashboardHandler {
	return &DashboardHandler{orders: orders, renderer: renderer, cookies: cookies}
}

// ServeHTTP handles GET /admin.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Stats"] = stats
	h.renderer.RenderHTTP(w, "admin/dashboard", data)
}
