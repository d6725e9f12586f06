package compute

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	engineCalculator = "calculator"
	engineProcessor  = "processor"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compute_operations_total",
		Help: "Total number of operations recorded into engine history",
	}, []string{"engine", "name", "operation"})

	historyEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "compute_history_entries",
		Help: "Current number of records held in engine history",
	}, []string{"engine", "name"})
)

func observeRecord(engine, name, operation string, length int64) {
	operationsTotal.WithLabelValues(engine, name, operation).Inc()
	historyEntries.WithLabelValues(engine, name).Set(float64(length))
}

func observeClear(engine, name string) {
	historyEntries.WithLabelValues(engine, name).Set(0)
}
