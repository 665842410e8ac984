// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCRequests counts Connect RPCs by procedure and result code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camptrack",
		Name:      "rpc_requests_total",
		Help:      "Connect RPCs handled, by procedure and code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency by procedure.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "camptrack",
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// NotificationsSuppressed counts notifications dropped because sender and
	// recipient were the same user.
	NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camptrack",
		Name:      "notifications_suppressed_total",
		Help:      "Self-addressed notifications that were not stored.",
	}, []string{"type"})

	// AssetDeleteFailures counts best-effort asset deletions that failed.
	AssetDeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "camptrack",
		Name:      "asset_delete_failures_total",
		Help:      "Asset deletions that failed and were ignored.",
	})

	// TransactionConflicts counts ledger operations that gave up on a
	// contended document.
	TransactionConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camptrack",
		Name:      "transaction_conflicts_total",
		Help:      "Single-document transactions that exhausted their retries.",
	}, []string{"collection"})

	// IndexRepairs counts reverse index entries added or removed by
	// reconciliation.
	IndexRepairs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camptrack",
		Name:      "index_repairs_total",
		Help:      "Reverse index entries repaired by maintenance.",
	}, []string{"index", "action"})

	// NotificationsPruned counts seen notifications removed by maintenance.
	NotificationsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "camptrack",
		Name:      "notifications_pruned_total",
		Help:      "Seen notifications deleted after the retention window.",
	})
)
