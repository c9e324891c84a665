package domain

// Cart domain errors.
var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrEmptyCart        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be between 1 and 10"}
	ErrNotAuthenticated = &Error{Code: EUNAUTHORIZED, Message: "Sign in to use the cart"}
)

// Line quantity bounds. The backend does not enforce the upper cap
// consistently, so it is applied here before any request is issued.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

// CartItem is one line of the cart. At most one line exists per movie;
// adding a movie that is already in the cart increments its quantity.
type CartItem struct {
	ID             int64  `json:"id"`
	MovieID        int64  `json:"movie_id"`
	Title          string `json:"title"`
	PosterURL      string `json:"poster_url"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	LineSubtotal   int64  `json:"line_subtotal_cents"`
}

// Cart is the authoritative cart snapshot as returned by the backend.
// Totals are computed server-side; TotalCents = SubtotalCents + TaxesCents
// and ItemCount is the sum of line quantities.
type Cart struct {
	Items         []CartItem `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxesCents    int64      `json:"taxes_cents"`
	TotalCents    int64      `json:"total_cents"`
	ItemCount     int        `json:"item_count"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// CheckInvariants verifies the arithmetic the backend promises:
// total = subtotal + taxes, item_count = sum of quantities, and no two
// lines referencing the same movie. Returns an internal error naming the
// first violated invariant.
func (c *Cart) CheckInvariants() error {
	if c == nil {
		return nil
	}

	if c.TotalCents != c.SubtotalCents+c.TaxesCents {
		return Errorf(EINTERNAL, "cart.check",
			"cart total %d does not equal subtotal %d + taxes %d",
			c.TotalCents, c.SubtotalCents, c.TaxesCents)
	}

	count := 0
	seen := make(map[int64]bool, len(c.Items))
	for _, item := range c.Items {
		if seen[item.MovieID] {
			return Errorf(EINTERNAL, "cart.check", "duplicate cart line for movie %d", item.MovieID)
		}
		seen[item.MovieID] = true
		count += item.Quantity
	}

	if count != c.ItemCount {
		return Errorf(EINTERNAL, "cart.check",
			"cart item count %d does not match summed quantities %d", c.ItemCount, count)
	}

	return nil
}

// Quantity returns the quantity of the line referencing the movie, or 0.
func (c *Cart) Quantity(movieID int64) int {
	if c == nil {
		return 0
	}
	for _, item := range c.Items {
		if item.MovieID == movieID {
			return item.Quantity
		}
	}
	return 0
}
