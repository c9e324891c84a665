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
	"github.com/nmoreyra/cartelera/internal/orders"
	"github.com/nmoreyra/cartelera/internal/payment"
	"github.com/nmoreyra/cartelera/internal/telemetry"
)

// CheckoutHandler drives the checkout form, order confirmation and the
// provider return pages.
type CheckoutHandler struct {
	carts    cart.Service
	orders   orders.Service
	bridge   payment.Bridge
	metrics  *telemetry.BusinessMetrics
	renderer *handler.Renderer
	cookies  *cookie.Config
}

func NewCheckoutHandler(
	carts cart.Service,
	orders orders.Service,
	bridge payment.Bridge,
	metrics *telemetry.BusinessMetrics,
	renderer *handler.Renderer,
	cookies *cookie.Config,
) *CheckoutHandler {
	return &CheckoutHandler{
		carts:    carts,
		orders:   orders,
		bridge:   bridge,
		metrics:  metrics,
		renderer: renderer,
		cookies:  cookies,
	}
}

// Page handles GET /checkout.
func (h *CheckoutHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	loaded, err := h.carts.Load(r.Context(), sess.User.ID)
	if err != nil {
		HandleError(w, r, h.cookies, err)
		return
	}
	if loaded.Empty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	data := BaseTemplateData(r)
	data["Cart"] = loaded
	// Prefill the form from the profile; the customer can still override.
	data["Form"] = domain.ShippingDetails{
		Name:    sess.User.Name,
		Surname: sess.User.Surname,
		Email:   sess.User.Email,
		Phone:   sess.User.Phone,
	}
	data["PaymentMethod"] = ""
	data["FieldErrors"] = map[string]string{}
	h.renderer.RenderHTTP(w, "storefront/checkout", data)
}

// Submit handles POST /checkout.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.GetSession(ctx)
	logger := middleware.GetLogger(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	details := domain.ShippingDetails{
		Name:    r.FormValue("name"),
		Surname: r.FormValue("surname"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Address: domain.ShippingAddress{
			Street:     r.FormValue("street"),
			City:       r.FormValue("city"),
			PostalCode: r.FormValue("postal_code"),
			Country:    r.FormValue("country"),
		},
		SpecialInstructions: r.FormValue("special_instructions"),
	}
	method := domain.PaymentMethod(r.FormValue("payment_method"))

	result, err := h.carts.Checkout(ctx, sess.User.ID, details, method)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.renderFormError(w, r, details, method, domain.GetValidationFields(err), "")
		case errors.Is(err, domain.ErrEmptyCart):
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
		case domain.IsCode(err, domain.EPAYMENT):
			// The order exists but the provider redirect could not be
			// created. Send the customer to their orders to retry.
			logger.Error("checkout: payment preference failed", "error", err)
			h.renderFormError(w, r, details, method, nil,
				"We could not start the payment. Your order was saved as pending; please try again from your order history.")
		default:
			HandleError(w, r, h.cookies, err)
		}
		return
	}

	if result.RedirectURL != "" {
		http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/checkout/confirmation?order="+strconv.FormatInt(result.Order.ID, 10), http.StatusSeeOther)
}

func (h *CheckoutHandler) renderFormError(
	w http.ResponseWriter,
	r *http.Request,
	details domain.ShippingDetails,
	method domain.PaymentMethod,
	fields map[string]string,
	message string,
) {
	if fields == nil {
		fields = map[string]string{}
	}
	sess := middleware.GetSession(r.Context())
	loaded, err := h.carts.Load(r.Context(), sess.User.ID)
	if err != nil {
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Cart"] = loaded
	data["Form"] = details
	data["PaymentMethod"] = string(method)
	data["FieldErrors"] = fields
	data["Error"] = message
	w.WriteHeader(http.StatusBadRequest)
	h.renderer.RenderHTTP(w, "storefront/checkout", data)
}

// Confirmation handles GET /checkout/confirmation?order=N after a cash
// checkout.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.URL.Query().Get("order"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := h.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		HandleError(w, r, h.cookies, err)
		return
	}

	data := BaseTemplateData(r)
	data["Order"] = order
	h.renderer.RenderHTTP(w, "storefront/order_confirmation", data)
}

// Success handles GET /checkout/success, the provider's approved-payment
// return URL. The query classification is confirmed against the backend
// when possible; if verification is unreachable the query parameters
// decide.
func (h *CheckoutHandler) Success(w http.ResponseWriter, r *http.Request) {
	h.providerReturn(w, r, true)
}

// Failure handles GET /checkout/failure.
func (h *CheckoutHandler) Failure(w http.ResponseWriter, r *http.Request) {
	h.providerReturn(w, r, false)
}

// Pending handles GET /checkout/pending.
func (h *CheckoutHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.providerReturn(w, r, false)
}

func (h *CheckoutHandler) providerReturn(w http.ResponseWriter, r *http.Request, verify bool) {
	ctx := r.Context()
	sess := middleware.GetSession(ctx)
	logger := middleware.GetLogger(ctx)

	ret := payment.InterpretReturn(r.URL.Query())
	status := ret.Classify()

	if verify && ret.PaymentID != "" {
		verification, err := h.bridge.VerifyPayment(ctx, ret.PaymentID)
		if err != nil {
			logger.Warn("payment verification unavailable, trusting return parameters",
				"payment_id", ret.PaymentID, "error", err)
		} else {
			status = verification.Classify()
		}
	}

	h.metrics.PaymentOutcome.WithLabelValues(string(status)).Inc()

	if status == domain.PaymentApproved {
		if err := h.carts.CompleteGatewayCheckout(ctx, sess.User.ID); err != nil {
			// The payment went through; an uncleared cart is recoverable.
			logger.Error("failed to clear cart after approved payment",
				"user_id", sess.User.ID, "error", err)
		}
	}

	data := BaseTemplateData(r)
	data["Status"] = status
	data["Message"] = status.Message()
	data["Approved"] = status == domain.PaymentApproved
	data["Reference"] = ret.ExternalReference
	data["PaymentID"] = ret.PaymentID
	h.renderer.RenderHTTP(w, "storefront/payment_result", data)
}
