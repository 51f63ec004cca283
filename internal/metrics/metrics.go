// Package metrics holds the prometheus counters of a grocer run. A CLI run
// is short lived, so the registry is written once to a node-exporter
// textfile instead of being scraped.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry groups all grocer metrics on a private prometheus registry
type Registry struct {
	reg *prometheus.Registry

	ProductsParsed prometheus.Counter
	ParseFailures  prometheus.Counter
	ListItems      prometheus.Counter
	CostLines      *prometheus.CounterVec
	Spend          *prometheus.CounterVec
	Diagnostics    *prometheus.CounterVec
	CommandSeconds *prometheus.HistogramVec
}

// NewRegistry creates a registry with all grocer metrics registered
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	productsParsed := prometheus.NewCounter(prometheus.CounterOpts{Name: "grocer_catalog_products_parsed_total"})
	parseFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "grocer_catalog_parse_failures_total"})
	listItems := prometheus.NewCounter(prometheus.CounterOpts{Name: "grocer_list_items_total"})
	costLines := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "grocer_cost_lines_total"}, []string{"currency"})
	spend := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "grocer_cost_spend_total"}, []string{"currency"})
	diagnostics := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "grocer_cost_diagnostics_total"}, []string{"kind"})
	commandSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grocer_command_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})

	r.MustRegister(productsParsed, parseFailures, listItems, costLines, spend, diagnostics, commandSeconds)
	return &Registry{
		reg:            r,
		ProductsParsed: productsParsed,
		ParseFailures:  parseFailures,
		ListItems:      listItems,
		CostLines:      costLines,
		Spend:          spend,
		Diagnostics:    diagnostics,
		CommandSeconds: commandSeconds,
	}
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes all metrics in text exposition format to path
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
