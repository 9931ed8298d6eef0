// Package metrics exposes counters for the loan lifecycle on the
// default Prometheus registry, served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loansCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinjamdesa_loans_created_total",
		Help: "Total number of loans created",
	})
	returnsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinjamdesa_returns_recorded_total",
		Help: "Total number of return records written",
	})
	stockRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinjamdesa_loans_rejected_stock_total",
		Help: "Loan creations rejected for insufficient stock",
	})
)

func IncLoanCreated()    { loansCreated.Inc() }
func IncReturnRecorded() { returnsRecorded.Inc() }
func IncStockRejected()  { stockRejected.Inc() }
