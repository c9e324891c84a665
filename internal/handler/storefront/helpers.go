package storefront

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/handler"
	"github.com/nmoreyra/cartelera/internal/middleware"
)

// BaseTemplateData returns the data every storefront template expects.
func BaseTemplateData(r *http.Request) map[string]any {
	data := map[string]any{}
	if sess := middleware.GetSession(r.Context()); sess != nil {
		data["User"] = &sess.User
	}
	return data
}

// HandleError delegates to the shared service-failure renderer.
func HandleError(w http.ResponseWriter, r *http.Request, cookies *cookie.Config, err error) {
	handler.HandleError(w, r, cookies, err)
}
