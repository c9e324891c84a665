// Package orders reads order history from the backend: the customer's
// own orders, and the full listing plus sales statistics for the admin
// back-office.
package orders

import (
	"context"
	"strconv"

	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
)

// Service provides order history operations.
type Service interface {
	// List returns the authenticated customer's orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// Get returns one order. The backend only serves orders the caller
	// owns, or any order for admins.
	Get(ctx context.Context, id int64) (*domain.Order, error)

	// ListAll returns every order. Admin only.
	ListAll(ctx context.Context) ([]domain.Order, error)

	// Stats aggregates sales statistics from the full order listing.
	// Admin only.
	Stats(ctx context.Context) (*Stats, error)
}

// Stats summarizes the shop's sales for the admin dashboard.
type Stats struct {
	TotalOrders          int
	RevenueCents         int64
	AverageOrderCents    int64
	OrdersByStatus       map[string]int
	OrdersByMethod       map[domain.PaymentMethod]int
	UnitsSold            int
}

type service struct {
	client *api.Client
}

// NewService creates an order history service backed by the gateway client.
func NewService(client *api.Client) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context) ([]domain.Order, error) {
	var list []domain.Order
	if err := s.client.Get(ctx, "/orders", &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := s.client.Get(ctx, "/orders/"+strconv.FormatInt(id, 10), &order); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Order, error) {
	var list []domain.Order
	if err := s.client.Get(ctx, "/orders/all", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Stats fetches every order and aggregates locally. The backend exposes
// no statistics endpoint; revenue counts only paid orders.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	list, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalOrders:    len(list),
		OrdersByStatus: make(map[string]int),
		OrdersByMethod: make(map[domain.PaymentMethod]int),
	}

	paid := 0
	for _, order := range list {
		stats.OrdersByStatus[order.Status]++
		stats.OrdersByMethod[order.PaymentMethod]++
		for _, item := range order.Items {
			stats.UnitsSold += item.Quantity
		}
		if order.Status == domain.OrderStatusPaid {
			stats.RevenueCents += order.TotalCents
			paid++
		}
	}

	if paid > 0 {
		stats.AverageOrderCents = stats.RevenueCents / int64(paid)
	}

	return stats, nil
}
