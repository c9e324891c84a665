package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
	"github.com/nmoreyra/cartelera/internal/payment"
)

// validate is shared; validator.Validate is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldLabels maps validator struct namespaces to form field names.
var fieldLabels = map[string]string{
	"ShippingDetails.Name":               "name",
	"ShippingDetails.Surname":            "surname",
	"ShippingDetails.Email":              "email",
	"ShippingDetails.Phone":              "phone",
	"ShippingDetails.Address.Street":     "address.street",
	"ShippingDetails.Address.City":       "address.city",
	"ShippingDetails.Address.PostalCode": "address.postal_code",
	"ShippingDetails.Address.Country":    "address.country",
}

// ValidateShippingDetails checks the checkout form locally. Returns a
// domain.ValidationError with one entry per offending field. No network
// traffic happens until this passes.
func ValidateShippingDetails(details domain.ShippingDetails) error {
	err := validate.Struct(details)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, "cart.checkout", "shipping details validation failed")
	}

	var out error
	for _, fe := range verrs {
		field, ok := fieldLabels[fe.StructNamespace()]
		if !ok {
			field = fe.StructNamespace()
		}

		message := "This field is required"
		if fe.Tag() == "email" {
			message = "Enter a valid email address"
		}
		out = domain.AddFieldError(out, field, message)
	}
	return out
}

// checkoutRequest is the order-creation body sent to the backend. The
// backend snapshots the server-held cart into the order.
type checkoutRequest struct {
	domain.ShippingDetails
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

func (o *orchestrator) Checkout(ctx context.Context, userID int64, details domain.ShippingDetails, method domain.PaymentMethod) (*CheckoutResult, error) {
	// Local validation comes first: a rejected form never reaches the network.
	if !method.Valid() {
		return nil, domain.Invalid("cart.checkout", "unsupported payment method")
	}
	if err := ValidateShippingDetails(details); err != nil {
		if o.metrics != nil {
			o.metrics.CheckoutRejected.Inc()
		}
		return nil, err
	}

	if api.TokenFromContext(ctx) == "" {
		return nil, domain.ErrNotAuthenticated
	}

	st := o.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.loaded || st.cart.Empty() {
		return nil, domain.ErrEmptyCart
	}

	if o.metrics != nil {
		o.metrics.CheckoutStarted.WithLabelValues(string(method)).Inc()
		o.metrics.CartValue.Observe(float64(st.cart.TotalCents))
	}

	var order domain.Order
	req := checkoutRequest{ShippingDetails: details, PaymentMethod: method}
	if err := o.client.Post(ctx, "/orders", req, &order); err != nil {
		o.count("checkout", "error")
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.OrdersCreated.WithLabelValues(string(method)).Inc()
		o.metrics.OrderValue.Observe(float64(order.TotalCents))
	}

	if method == domain.PaymentMethodCash {
		// Cash orders are final: the backend consumed the cart, reset ours.
		if err := o.apply(st, &domain.Cart{}); err != nil {
			return nil, err
		}
		o.count("checkout", "ok")
		if o.metrics != nil {
			o.metrics.CheckoutCompleted.WithLabelValues(string(method)).Inc()
		}
		return &CheckoutResult{Order: &order}, nil
	}

	// Gateway payment: the pending order exists, now obtain the redirect.
	// The cart stays as-is until the provider confirms the payment.
	pref, err := o.bridge.CreatePreference(ctx, payment.PreferenceParams{
		Order:   &order,
		Details: details,
		BaseURL: o.baseURL,
	})
	if err != nil {
		o.count("checkout", "error")
		o.logger.Warn("pending order created but preference failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
		return nil, err
	}

	o.count("checkout", "ok")
	return &CheckoutResult{Order: &order, RedirectURL: pref.InitPoint}, nil
}

// CompleteGatewayCheckout finishes a gateway checkout after the provider
// reported the payment approved: the cart is emptied and the session
// returns to its initial empty state.
func (o *orchestrator) CompleteGatewayCheckout(ctx context.Context, userID int64) error {
	if err := o.Clear(ctx, userID); err != nil {
		return err
	}
	if o.metrics != nil {
		o.metrics.CheckoutCompleted.WithLabelValues(string(domain.PaymentMethodMercadoPago)).Inc()
	}
	return nil
}
