// qrun
// Copyright (C) 2024-2026+ the qrun contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package qgraph

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scibatch/qrun/engine"
)

// Metrics records scheduling-loop progress on a caller-owned registry. A
// Graph with no Metrics attached simply skips all recording.
type Metrics struct {
	edges *prometheus.GaugeVec
	ticks prometheus.Counter
}

// NewMetrics builds a Metrics and registers it on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		edges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "qrun",
			Name:      "function_edges",
			Help:      "Current number of function edges by status.",
		}, []string{"status"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qrun",
			Name:      "scheduler_ticks_total",
			Help:      "Number of scheduling loop iterations run.",
		}),
	}
	if err := reg.Register(m.edges); err != nil {
		return nil, err
	}
	if err := reg.Register(m.ticks); err != nil {
		return nil, err
	}
	return m, nil
}

// recordTick increments the loop-iteration counter.
func (m *Metrics) recordTick() {
	if m == nil {
		return
	}
	m.ticks.Inc()
}

// recordCounts overwrites the per-status gauge values.
func (m *Metrics) recordCounts(edges []*functionEdge) {
	if m == nil {
		return
	}
	counts := map[engine.Status]float64{
		engine.Pending: 0,
		engine.Running: 0,
		engine.Done:    0,
		engine.Failed:  0,
		engine.Skipped: 0,
	}
	for _, fe := range edges {
		counts[fe.Status()]++
	}
	for s, n := range counts {
		m.edges.WithLabelValues(s.String()).Set(n)
	}
}
