package storefront

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/catalog"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
)

// featuredCount is how many titles the landing page shows.
const featuredCount = 6

// HomeHandler renders the landing page.
type HomeHandler struct {
	catalog  catalog.Service
	renderer *handler.Renderer
}

func NewHomeHandler(catalog catalog.Service, renderer *handler.Renderer) *HomeHandler {
	return &HomeHandler{catalog: catalog, renderer: renderer}
}

// ServeHTTP handles GET /.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.List(r.Context(), catalog.Query{})
	if err != nil {
		// The landing page still renders when the catalog is down.
		middleware.GetLogger(r.Context()).Error("failed to load featured movies", "error", err)
		movies = nil
	}

	featured := movies
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}

	data := BaseTemplateData(r)
	data["Featured"] = featured
	data["Genres"] = domain.Genres()
	h.renderer.RenderHTTP(w, "storefront/home", data)
}
