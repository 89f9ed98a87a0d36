package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout outcomes.
type CheckoutMetrics struct {
	duration      *prometheus.HistogramVec
	ordersPlaced  *prometheus.CounterVec
	couponsDenied *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout executions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders created, labeled by payment method.",
	}, []string{"payment_method"})
	couponsDenied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupons_denied_total",
		Help: "Coupon validations rejected, labeled by reason.",
	}, []string{"reason"})
	reg.MustRegister(duration, ordersPlaced, couponsDenied)
	return &CheckoutMetrics{
		duration:      duration,
		ordersPlaced:  ordersPlaced,
		couponsDenied: couponsDenied,
	}
}

// ObserveDuration records the duration of a checkout attempt.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncOrdersPlaced adds created orders for a payment method.
func (c *CheckoutMetrics) IncOrdersPlaced(paymentMethod string, count int) {
	if c == nil || c.ordersPlaced == nil || count <= 0 {
		return
	}
	c.ordersPlaced.WithLabelValues(normalizeLabel(paymentMethod)).Add(float64(count))
}

// IncCouponDenied increments the rejected-coupon counter for a reason.
func (c *CheckoutMetrics) IncCouponDenied(reason string) {
	if c == nil || c.couponsDenied == nil {
		return
	}
	c.couponsDenied.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
