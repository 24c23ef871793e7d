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

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_ObserveDispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveDispatch("Reservation", "tenant-a")
	r.ObserveDispatch("Reservation", "tenant-a")
	r.ObserveDispatch("Priority", "tenant-b")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.dispatchTotal.WithLabelValues("Reservation", "tenant-a")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.dispatchTotal.WithLabelValues("Priority", "tenant-b")))
}

func TestPrometheusRecorder_ObserveQueueDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveQueueDepth("tenant-a", 7)
	assert.Equal(t, float64(7), testutil.ToFloat64(r.queueDepth.WithLabelValues("tenant-a")))

	r.ObserveQueueDepth("tenant-a", 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(r.queueDepth.WithLabelValues("tenant-a")))
}

func TestPrometheusRecorder_ObserveFutureWait(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveFutureWait(1.5)
	r.ObserveFutureWait(2.5)

	var m dto.Metric
	require.NoError(t, r.futureWait.Write(&m))
	assert.EqualValues(t, 2, m.GetHistogram().GetSampleCount())
	assert.InDelta(t, 4.0, m.GetHistogram().GetSampleSum(), 1e-9)
}
