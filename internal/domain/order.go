package domain

import "time"

// Order domain errors.
var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}
)

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	// PaymentMethodCash is paid offline on delivery; the order is created
	// immediately and the cart cleared.
	PaymentMethodCash PaymentMethod = "CASH"

	// PaymentMethodMercadoPago is paid at the external provider; a pending
	// order is created first and the customer is redirected.
	PaymentMethodMercadoPago PaymentMethod = "MERCADO_PAGO"
)

// Valid reports whether the method is one the checkout accepts.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodMercadoPago
}

// ShippingAddress is the address block of the checkout form.
type ShippingAddress struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// ShippingDetails is entered at checkout and submitted with the order.
// It is transient: not persisted by this application beyond the
// order-creation request.
type ShippingDetails struct {
	Name                string          `json:"name" validate:"required"`
	Surname             string          `json:"surname" validate:"required"`
	Email               string          `json:"email" validate:"required,email"`
	Phone               string          `json:"phone" validate:"required"`
	Address             ShippingAddress `json:"address"`
	SpecialInstructions string          `json:"special_instructions"`
}

// Order statuses as reported by the backend.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

// Order is an immutable snapshot created at checkout. Later cart
// mutations never affect it.
type Order struct {
	ID            int64         `json:"id"`
	Items         []CartItem    `json:"items"`
	SubtotalCents int64         `json:"subtotal_cents"`
	TaxesCents    int64         `json:"taxes_cents"`
	TotalCents    int64         `json:"total_cents"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
