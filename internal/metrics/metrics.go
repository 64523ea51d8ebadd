package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printdesk_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrderStatusChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printdesk_order_status_changes_total",
		Help: "Total number of order status changes.",
	})

	SecretKeyCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printdesk_secret_key_collisions_total",
		Help: "Total number of secret key candidates rejected because they were already taken.",
	})

	SecretKeyExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printdesk_secret_key_exhausted_total",
		Help: "Total number of order creations that ran out of secret key attempts.",
	})

	PaymentsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printdesk_payments_completed_total",
		Help: "Total number of reception orders settled through the complete-payment action.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "printdesk_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OutboxTasksPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "printdesk_outbox_tasks_published_total",
		Help: "Outbox tasks handed to the message broker, by result.",
	},
		[]string{"result"},
	)

	CategoryCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "printdesk_category_cache_items",
		Help: "Current number of category attribute trees in the cache.",
	})
)
