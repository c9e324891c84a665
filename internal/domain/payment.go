package domain

// PaymentStatus is the closed set of payment outcomes derived from
// provider response codes. Anything the provider reports outside the
// known values maps to PaymentUnknown.
type PaymentStatus string

const (
	PaymentApproved  PaymentStatus = "approved"
	PaymentPending   PaymentStatus = "pending"
	PaymentInProcess PaymentStatus = "in_process"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentUnknown   PaymentStatus = "unknown"
)

// Message returns the customer-facing description of the outcome.
func (s PaymentStatus) Message() string {
	switch s {
	case PaymentApproved:
		return "Payment approved"
	case PaymentPending:
		return "Payment pending processing"
	case PaymentInProcess:
		return "Payment is being verified"
	case PaymentRejected:
		return "Payment rejected"
	case PaymentCancelled:
		return "Payment cancelled"
	default:
		return "Payment status unknown. Check your order history for updates."
	}
}
