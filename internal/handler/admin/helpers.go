package admin

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/middleware"
)

// BaseTemplateData returns the data every admin template expects.
func BaseTemplateData(r *http.Request) map[string]any {
	data := map[string]any{}
	if sess := middleware.GetSession(r.Context()); sess != nil {
		data["User"] = &sess.User
	}
	return data
}
