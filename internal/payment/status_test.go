package payment

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmoreyra/cartelera/internal/domain"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name             string
		status           string
		collectionStatus string
		want             domain.PaymentStatus
	}{
		{"approved", "approved", "", domain.PaymentApproved},
		{"approved wins over collection status", "approved", "rejected", domain.PaymentApproved},
		{"pending", "pending", "", domain.PaymentPending},
		{"in process", "in_process", "", domain.PaymentInProcess},
		{"rejected", "rejected", "", domain.PaymentRejected},
		{"cancelled", "cancelled", "", domain.PaymentCancelled},
		{"collection status used when status empty", "", "pending", domain.PaymentPending},
		{"collection approved when status empty", "", "approved", domain.PaymentApproved},
		{"both empty", "", "", domain.PaymentUnknown},
		{"unrecognized value", "charged_back", "", domain.PaymentUnknown},
		{"null literal from provider", "null", "null", domain.PaymentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.status, tt.collectionStatus)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpretReturn(t *testing.T) {
	query := url.Values{
		"collection_id":       {"123456"},
		"collection_status":   {"approved"},
		"payment_id":          {"78910"},
		"status":              {"approved"},
		"external_reference":  {"order_42"},
		"payment_type":        {"credit_card"},
		"merchant_order_id":   {"555"},
		"preference_id":       {"pref-abc"},
		"site_id":             {"MLA"},
		"processing_mode":     {"aggregator"},
		"merchant_account_id": {"null"},
	}

	ret := InterpretReturn(query)

	assert.Equal(t, "123456", ret.CollectionID)
	assert.Equal(t, "approved", ret.CollectionStatus)
	assert.Equal(t, "78910", ret.PaymentID)
	assert.Equal(t, "approved", ret.Status)
	assert.Equal(t, "order_42", ret.ExternalReference)
	assert.Equal(t, "credit_card", ret.PaymentType)
	assert.Equal(t, "555", ret.MerchantOrderID)
	assert.Equal(t, "pref-abc", ret.PreferenceID)
	assert.Equal(t, "MLA", ret.SiteID)
	assert.Equal(t, "aggregator", ret.ProcessingMode)
	assert.Equal(t, "null", ret.MerchantAccountID)

	assert.Equal(t, domain.PaymentApproved, ret.Classify())
}

func TestInterpretReturnMissingKeys(t *testing.T) {
	ret := InterpretReturn(url.Values{})

	assert.Equal(t, Return{}, ret)
	assert.Equal(t, domain.PaymentUnknown, ret.Classify())
}
