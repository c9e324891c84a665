package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoLineCart() Cart {
	return Cart{
		Items: []CartItem{
			{ID: 1, MovieID: 10, UnitPriceCents: 1000, Quantity: 2, LineSubtotal: 2000},
			{ID: 2, MovieID: 11, UnitPriceCents: 500, Quantity: 1, LineSubtotal: 500},
		},
		SubtotalCents: 2500,
		TaxesCents:    525,
		TotalCents:    3025,
		ItemCount:     3,
	}
}

func TestCartCheckInvariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Cart)
		wantErr bool
	}{
		{
			name:   "consistent cart passes",
			mutate: func(c *Cart) {},
		},
		{
			name:   "nil-safe",
			mutate: nil,
		},
		{
			name:    "total does not add up",
			mutate:  func(c *Cart) { c.TotalCents = 9999 },
			wantErr: true,
		},
		{
			name:    "item count does not match quantities",
			mutate:  func(c *Cart) { c.ItemCount = 7 },
			wantErr: true,
		},
		{
			name: "duplicate movie lines",
			mutate: func(c *Cart) {
				c.Items[1].MovieID = c.Items[0].MovieID
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mutate == nil {
				var c *Cart
				assert.NoError(t, c.CheckInvariants())
				return
			}

			cart := twoLineCart()
			tt.mutate(&cart)

			err := cart.CheckInvariants()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, EINTERNAL, ErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCartEmpty(t *testing.T) {
	var nilCart *Cart
	assert.True(t, nilCart.Empty())
	assert.True(t, (&Cart{}).Empty())

	cart := twoLineCart()
	assert.False(t, cart.Empty())
}

func TestCartQuantity(t *testing.T) {
	cart := twoLineCart()

	assert.Equal(t, 2, cart.Quantity(10))
	assert.Equal(t, 1, cart.Quantity(11))
	assert.Equal(t, 0, cart.Quantity(999))
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.Valid())
	assert.True(t, PaymentMethodMercadoPago.Valid())
	assert.False(t, PaymentMethod("BITCOIN").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
