package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsDispatched counts every dispatched command by name and outcome
	// ("ok" or the reported error kind).
	CommandsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "commands_dispatched_total",
		Help:      "Dispatched registry commands by command name and outcome.",
	}, []string{"command", "outcome"})

	TradesExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "trades_executed_total",
		Help:      "Successfully executed aggress pairs.",
	})

	QuantityTraded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "quantity_traded_total",
		Help:      "Total quantity filled across all trades.",
	})
)
