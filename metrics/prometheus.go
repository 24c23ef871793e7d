/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import "github.com/prometheus/client_golang/prometheus"

const subsystem = "dmclock"

// PrometheusRecorder is a Recorder backed by github.com/prometheus/client_golang. Unlike the teacher's
// process-wide metrics packages (which register into klog's legacyregistry as package-level
// singletons), this one is constructed per caller and registered into a Registerer the caller owns,
// so more than one Scheduler can coexist in a process without colliding on metric names.
type PrometheusRecorder struct {
	dispatchTotal *prometheus.CounterVec
	queueDepth    *prometheus.GaugeVec
	futureWait    prometheus.Histogram
}

// NewPrometheusRecorder constructs a PrometheusRecorder and registers its metrics into reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "dispatch_total",
			Help:      "Count of dispatched requests by phase and client.",
		}, []string{"phase", "client"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "queue_depth",
			Help:      "Number of requests currently queued per client, sampled on every aging pass.",
		}, []string{"client"}),
		futureWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "future_wait_seconds",
			Help:      "Virtual-time seconds until the next dispatchable deadline, observed whenever a scheduling pass finds nothing ready yet.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.dispatchTotal, r.queueDepth, r.futureWait)
	return r
}

func (r *PrometheusRecorder) ObserveDispatch(phase, clientID string) {
	r.dispatchTotal.WithLabelValues(phase, clientID).Inc()
}

func (r *PrometheusRecorder) ObserveQueueDepth(clientID string, depth int) {
	r.queueDepth.WithLabelValues(clientID).Set(float64(depth))
}

func (r *PrometheusRecorder) ObserveFutureWait(waitSeconds float64) {
	r.futureWait.Observe(waitSeconds)
}
