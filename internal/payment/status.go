package payment

import (
	"net/url"

	"github.com/nmoreyra/cartelera/internal/domain"
)

// Return is the flat record of provider return-URL query parameters.
// All fields are raw strings exactly as received; absent keys are "".
type Return struct {
	CollectionID      string
	CollectionStatus  string
	PaymentID         string
	Status            string
	ExternalReference string
	PaymentType       string
	MerchantOrderID   string
	PreferenceID      string
	SiteID            string
	ProcessingMode    string
	MerchantAccountID string
}

// InterpretReturn maps the provider's return query parameters into a
// Return record. Pure function, no network call.
func InterpretReturn(query url.Values) Return {
	return Return{
		CollectionID:      query.Get("collection_id"),
		CollectionStatus:  query.Get("collection_status"),
		PaymentID:         query.Get("payment_id"),
		Status:            query.Get("status"),
		ExternalReference: query.Get("external_reference"),
		PaymentType:       query.Get("payment_type"),
		MerchantOrderID:   query.Get("merchant_order_id"),
		PreferenceID:      query.Get("preference_id"),
		SiteID:            query.Get("site_id"),
		ProcessingMode:    query.Get("processing_mode"),
		MerchantAccountID: query.Get("merchant_account_id"),
	}
}

// ClassifyStatus maps provider status strings onto the closed
// PaymentStatus set. status takes priority; collectionStatus is consulted
// only when status is empty. The mapping is total: anything unrecognized
// yields PaymentUnknown.
func ClassifyStatus(status, collectionStatus string) domain.PaymentStatus {
	effective := status
	if effective == "" {
		effective = collectionStatus
	}

	switch effective {
	case "approved":
		return domain.PaymentApproved
	case "pending":
		return domain.PaymentPending
	case "in_process":
		return domain.PaymentInProcess
	case "rejected":
		return domain.PaymentRejected
	case "cancelled":
		return domain.PaymentCancelled
	default:
		return domain.PaymentUnknown
	}
}

// Classify resolves a Return to its PaymentStatus.
func (r Return) Classify() domain.PaymentStatus {
	return ClassifyStatus(r.Status, r.CollectionStatus)
}
