// Package observability provides prometheus metric vectors for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigmarket_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gigmarket_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// OffersCreated counts offers published by business users.
	OffersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigmarket_offers_created_total",
		Help: "Total number of offers created",
	})

	// OrdersCreated counts orders placed by customers.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigmarket_orders_created_total",
		Help: "Total number of orders created",
	})

	// OrderStatusTransitions counts status updates by target status.
	OrderStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigmarket_order_status_transitions_total",
		Help: "Total number of order status transitions by target status",
	}, []string{"status"})

	// ReviewsCreated counts reviews submitted by customers.
	ReviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigmarket_reviews_created_total",
		Help: "Total number of reviews created",
	})

	// ReviewConflicts counts duplicate-review attempts rejected by the
	// uniqueness rule, application check and store constraint combined.
	ReviewConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigmarket_review_conflicts_total",
		Help: "Total number of rejected duplicate review attempts",
	})
)
