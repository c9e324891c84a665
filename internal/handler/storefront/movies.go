package storefront

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/catalog"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
)

// MovieHandler renders the catalog listing and movie detail pages.
type MovieHandler struct {
	catalog  catalog.Service
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewMovieHandler(catalog catalog.Service, renderer *handler.Renderer, cookies *cookie.Config) *MovieHandler {
	return &MovieHandler{catalog: catalog, renderer: renderer, cookies: cookies}
}

// List handles GET /movies with optional search, genre and page query
// parameters.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Search: r.URL.Query().Get("search"),
		Genre:  r.URL.Query().Get("genre"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 1 {
		q.Page = page
	}

	movies, err := h.catalog.List(r.Context(), q)
	if err != nil {
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Movies"] = movies
	data["Search"] = q.Search
	data["Genre"] = q.Genre
	data["Genres"] = domain.Genres()
	data["Page"] = max(q.Page, 1)
	h.renderer.RenderHTTP(w, "storefront/movies", data)
}

// Detail handles GET /movies/{id}.
func (h *MovieHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	movie, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			http.NotFound(w, r)
			return
		}
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Movie"] = movie
	data["MaxQuantity"] = domain.MaxLineQuantity
	h.renderer.RenderHTTP(w, "storefront/movie_detail", data)
}
