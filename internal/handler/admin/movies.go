package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/nmoreyra/cartelera/internal/catalog"
	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
)

// MovieHandler serves the catalog management screens.
type MovieHandler struct {
	catalog  catalog.Service
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewMovieHandler(catalog catalog.Service, renderer *handler.Renderer, cookies *cookie.Config) *MovieHandler {
	return &MovieHandler{catalog: catalog, renderer: renderer, cookies: cookies}
}

// List handles GET /admin/movies.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{Search: r.URL.Query().Get("search")}
	movies, err := h.catalog.List(r.Context(), q)
	if err != nil {
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Movies"] = movies
	data["Search"] = q.Search
	h.renderer.RenderHTTP(w, "admin/movies", data)
}

// NewForm handles GET /admin/movies/new.
func (h *MovieHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := BaseTemplateData(r)
	data["Movie"] = &domain.Movie{}
	data["Genres"] = domain.Genres()
	h.renderer.RenderHTTP(w, "admin/movie_form", data)
}

// Create handles POST /admin/movies.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	movie, formErr := movieFromForm(r)
	if formErr != "" {
		h.renderForm(w, r, movie, formErr)
		return
	}

	created, err := h.catalog.Create(r.Context(), *movie)
	if err != nil {
		middleware.GetLogger(r.Context()).Error("failed to create movie", "error", err)
		h.renderForm(w, r, movie, domain.ErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/admin/movies/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

// EditForm handles GET /admin/movies/{id}.
func (h *MovieHandler) EditForm(w http.ResponseWriter, r *http.Request) {
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
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Movie"] = movie
	data["Genres"] = domain.Genres()
	h.renderer.RenderHTTP(w, "admin/movie_form", data)
}

// Update handles POST /admin/movies/{id}.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	movie, formErr := movieFromForm(r)
	movie.ID = id
	if formErr != "" {
		h.renderForm(w, r, movie, formErr)
		return
	}

	if _, err := h.catalog.Update(r.Context(), *movie); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			http.NotFound(w, r)
			return
		}
		middleware.GetLogger(r.Context()).Error("failed to update movie", "movie_id", id, "error", err)
		h.renderForm(w, r, movie, domain.ErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/admin/movies", http.StatusSeeOther)
}

// Delete handles POST /admin/movies/{id}/delete.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrMovieNotFound) {
		handler.HandleError(w, r, h.cookies, err)
		return
	}

	http.Redirect(w, r, "/admin/movies", http.StatusSeeOther)
}

func (h *MovieHandler) renderForm(w http.ResponseWriter, r *http.Request, movie *domain.Movie, errMsg string) {
	data := BaseTemplateData(r)
	data["Movie"] = movie
	data["Genres"] = domain.Genres()
	data["Error"] = errMsg
	w.WriteHeader(http.StatusBadRequest)
	h.renderer.RenderHTTP(w, "admin/movie_form", data)
}

// movieFromForm parses the movie form. The price is entered in decimal
// and stored as cents.
func movieFromForm(r *http.Request) (*domain.Movie, string) {
	if err := r.ParseForm(); err != nil {
		return &domain.Movie{}, "Invalid form data"
	}

	movie := &domain.Movie{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: r.FormValue("description"),
		Genre:       r.FormValue("genre"),
		Director:    strings.TrimSpace(r.FormValue("director")),
		PosterURL:   strings.TrimSpace(r.FormValue("poster_url")),
	}

	if movie.Title == "" {
		return movie, "Title is required"
	}

	if year, err := strconv.Atoi(r.FormValue("release_year")); err == nil {
		movie.ReleaseYear = year
	}

	cents, err := parsePriceCents(r.FormValue("price"))
	if err != nil || cents < 0 {
		return movie, "Enter a valid price"
	}
	movie.PriceCents = cents

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		return movie, "Enter a valid stock count"
	}
	movie.Stock = stock

	return movie, ""
}

// parsePriceCents converts a decimal price string like "12.50" to cents
// without going through floating point.
func parsePriceCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}

	switch len(frac) {
	case 0:
		return units * 100, nil
	case 1:
		frac += "0"
	case 2:
	default:
		frac = frac[:2]
	}

	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	return units*100 + cents, nil
}
