// Package metrics exposes Prometheus counters for the engine passes and the
// persistence coordinator. Collectors register on the default registry and are
// served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsMaterialized counts transactions created by the recurring
	// scheduler.
	TransactionsMaterialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finledger_recurring_transactions_materialized_total",
		Help: "Transactions materialized from recurring templates.",
	})

	// RemindersEmitted counts debt payment reminders emitted by the reminder
	// engine.
	RemindersEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finledger_debt_reminders_emitted_total",
		Help: "Debt payment reminder notifications emitted.",
	})

	// AggregateWrites counts durable writes per aggregate key, debounced and
	// synchronous alike.
	AggregateWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finledger_aggregate_writes_total",
		Help: "Durable aggregate writes, by aggregate key.",
	}, []string{"aggregate"})

	// WriteFailures counts durable writes that returned an error.
	WriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finledger_aggregate_write_failures_total",
		Help: "Failed durable aggregate writes, by aggregate key.",
	}, []string{"aggregate"})

	// ImportFailures counts rejected snapshot imports.
	ImportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finledger_snapshot_import_failures_total",
		Help: "Snapshot imports rejected during validation or parsing.",
	})
)
