// Package metrics holds the prometheus collectors of the core. They live on a
// private registry; the desktop shell decides whether and how to expose it.
package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry collects every metric defined in this package.
var Registry = prometheus.NewRegistry()

var (
	// Reconciliations counts apply-phase outcomes by result (applied, noop, rejected, rolled_back).
	Reconciliations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookncart_reconciliations_total",
			Help: "Shopping list reconciliations by outcome",
		},
		[]string{"result"},
	)

	// ReconcileChanges counts row changes produced by reconciliation by kind (insert, update, delete).
	ReconcileChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookncart_reconcile_changes_total",
			Help: "Line item changes applied by reconciliation",
		},
		[]string{"kind"},
	)

	RateFetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cookncart_rate_fetch_failures_total",
		Help: "Exchange rate fetches that fell back to the identity rate",
	})

	MissingProducts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cookncart_cost_missing_products_total",
		Help: "Line items skipped in cost aggregation because their product is gone",
	})

	ApplyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cookncart_reconcile_apply_seconds",
		Help:    "Duration of the reconciliation apply transaction",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	Registry.MustRegister(Reconciliations, ReconcileChanges, RateFetchFailures, MissingProducts, ApplyDuration)
}

// Snapshot flattens the registry into `name{label="value"}` → value, for
// logging at the end of a headless run. Histograms report _count and _sum.
func Snapshot() (map[string]float64, error) {
	families, err := Registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
				out[key+"_sum"] = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return out, nil
}
