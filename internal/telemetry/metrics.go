package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for storefront-level
// observability: cart activity, the checkout funnel and payment outcomes.
type BusinessMetrics struct {
	// Cart
	CartOperations *prometheus.CounterVec // op, outcome
	CartValue      prometheus.Histogram

	// Checkout funnel
	CheckoutStarted   *prometheus.CounterVec // payment_method
	CheckoutCompleted *prometheus.CounterVec // payment_method
	CheckoutRejected  prometheus.Counter     // validation failures

	// Payments
	PaymentOutcome *prometheus.CounterVec // status

	// Orders
	OrdersCreated *prometheus.CounterVec // payment_method
	OrderValue    prometheus.Histogram

	// Auth
	Logins      prometheus.Counter
	LoginFailed prometheus.Counter
	Signups     prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics with the
// given registerer. Pass prometheus.DefaultRegisterer in production and a
// fresh registry in tests.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "cartelera"
	}
	factory := promauto.With(reg)

	return &BusinessMetrics{
		CartOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		CartValue: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_value_cents",
			Help:      "Cart total at checkout time, in cents",
			Buckets:   prometheus.ExponentialBuckets(500, 2.5, 8),
		}),
		CheckoutStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_started_total",
			Help:      "Checkout attempts by payment method",
		}, []string{"payment_method"}),
		CheckoutCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_completed_total",
			Help:      "Successful checkouts by payment method",
		}, []string{"payment_method"}),
		CheckoutRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_rejected_total",
			Help:      "Checkouts rejected by local validation",
		}),
		PaymentOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_outcome_total",
			Help:      "Provider payment outcomes by classified status",
		}, []string{"status"}),
		OrdersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders created by payment method",
		}, []string{"payment_method"}),
		OrderValue: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value_cents",
			Help:      "Order total at creation time, in cents",
			Buckets:   prometheus.ExponentialBuckets(500, 2.5, 8),
		}),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Successful logins",
		}),
		LoginFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failed_total",
			Help:      "Failed login attempts",
		}),
		Signups: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Account registrations",
		}),
	}
}
