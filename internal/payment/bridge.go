// Package payment bridges checkout to the external payment provider.
// The provider is never called directly: preference creation and payment
// verification go through the backend's provider-integration endpoints,
// and the return-URL query parameters are interpreted locally.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
)

// Bridge errors.
var (
	ErrPreferenceFailed = &domain.Error{Code: domain.EPAYMENT, Message: "Could not create payment preference"}
)

// Bridge creates provider payment preferences and verifies payments.
type Bridge interface {
	// CreatePreference registers the pending order with the provider and
	// returns the redirect target for the hosted checkout.
	CreatePreference(ctx context.Context, params PreferenceParams) (*Preference, error)

	// VerifyPayment confirms a payment's current status with a server
	// round-trip. Failures are tolerated by callers, which fall back to
	// the return-parameter-derived status.
	VerifyPayment(ctx context.Context, paymentID string) (*Verification, error)
}

// PreferenceParams carries everything the provider payload needs.
type PreferenceParams struct {
	Order   *domain.Order
	Details domain.ShippingDetails

	// BaseURL is this application's public URL, used to build the
	// provider's back URLs.
	BaseURL string
}

// Preference is the provider's reply to preference creation.
type Preference struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	ExternalReference string `json:"external_reference"`
}

// Verification is the provider-reported state of a single payment.
// Status is the raw provider string; Classify maps it onto the closed
// status set.
type Verification struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Detail    string `json:"status_detail"`
}

// Classify resolves the verification to a PaymentStatus.
func (v *Verification) Classify() domain.PaymentStatus {
	return ClassifyStatus(v.Status, "")
}

type bridge struct {
	client *api.Client
	logger *slog.Logger
}

// NewBridge creates a Bridge backed by the gateway client.
func NewBridge(client *api.Client, logger *slog.Logger) Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &bridge{client: client, logger: logger}
}

// preferencePayload is the provider-specific request shape. Amounts are
// decimal units, not cents, because that is what the provider expects.
type preferencePayload struct {
	Items             []preferenceItem `json:"items"`
	Payer             preferencePayer  `json:"payer"`
	BackURLs          backURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
	ExternalReference string           `json:"external_reference"`
}

type preferenceItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PictureURL  string  `json:"picture_url,omitempty"`
	CategoryID  string  `json:"category_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type preferencePayer struct {
	Name    string       `json:"name"`
	Surname string       `json:"surname"`
	Email   string       `json:"email"`
	Phone   payerPhone   `json:"phone"`
	Address payerAddress `json:"address"`
}

type payerPhone struct {
	Number string `json:"number"`
}

type payerAddress struct {
	StreetName string `json:"street_name"`
	ZipCode    string `json:"zip_code"`
}

type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

func (b *bridge) CreatePreference(ctx context.Context, params PreferenceParams) (*Preference, error) {
	if params.Order == nil || len(params.Order.Items) == 0 {
		return nil, domain.Invalid("payment.create_preference", "order has no items")
	}

	base := strings.TrimSuffix(params.BaseURL, "/")

	payload := preferencePayload{
		Items:             make([]preferenceItem, 0, len(params.Order.Items)),
		AutoReturn:        "approved",
		ExternalReference: ExternalReference(params.Order.ID),
		Payer: preferencePayer{
			Name:    params.Details.Name,
			Surname: params.Details.Surname,
			Email:   params.Details.Email,
			Phone:   payerPhone{Number: params.Details.Phone},
			Address: payerAddress{
				StreetName: params.Details.Address.Street,
				ZipCode:    params.Details.Address.PostalCode,
			},
		},
		BackURLs: backURLs{
			Success: base + "/checkout/success",
			Failure: base + "/checkout/failure",
			Pending: base + "/checkout/pending",
		},
	}

	for _, item := range params.Order.Items {
		payload.Items = append(payload.Items, preferenceItem{
			ID:          fmt.Sprintf("%d", item.MovieID),
			Title:       item.Title,
			Description: item.Title,
			PictureURL:  item.PosterURL,
			CategoryID:  "movies",
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.UnitPriceCents) / 100,
		})
	}

	var pref Preference
	if err := b.client.Post(ctx, "/payments/mercadopago/preference", payload, &pref); err != nil {
		b.logger.Error("preference creation failed",
			slog.Int64("order_id", params.Order.ID),
			slog.String("error", err.Error()))
		return nil, domain.WrapError(err, domain.EPAYMENT, "payment.create_preference",
			ErrPreferenceFailed.Message)
	}

	if pref.InitPoint == "" {
		return nil, domain.Errorf(domain.EPAYMENT, "payment.create_preference",
			"%s", ErrPreferenceFailed.Message)
	}

	return &pref, nil
}

func (b *bridge) VerifyPayment(ctx context.Context, paymentID string) (*Verification, error) {
	if paymentID == "" {
		return nil, domain.Invalid("payment.verify", "payment id is required")
	}

	var v Verification
	if err := b.client.Get(ctx, "/payments/mercadopago/verify/"+paymentID, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ExternalReference builds the provider reference for an order.
func ExternalReference(orderID int64) string {
	return fmt.Sprintf("order_%d", orderID)
}
