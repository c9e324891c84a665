package handler

import (
	"net/http"

	"github.com/nmoreyra/cartelera/internal/cookie"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/middleware"
)

// ErrorCodeToHTTPStatus maps a domain error code to an HTTP status.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// ErrorStatus maps any error to an HTTP status via its domain code.
func ErrorStatus(err error) int {
	return ErrorCodeToHTTPStatus(domain.ErrorCode(err))
}

// HandleError renders a service failure. Expired or rejected tokens tear
// the session down and bounce the customer to the login page; everything
// else gets a plain error status.
func HandleError(w http.ResponseWriter, r *http.Request, cookies *cookie.Config, err error) {
	logger := middleware.GetLogger(r.Context())

	if domain.IsCode(err, domain.EUNAUTHORIZED) {
		logger.Warn("session rejected by backend, signing out", "error", err)
		cookies.Clear(w)
		http.Redirect(w, r, "/login?return_to="+r.URL.Path, http.StatusSeeOther)
		return
	}

	logger.Error("request failed", "error", err)
	http.Error(w, domain.ErrorMessage(err), ErrorStatus(err))
}
