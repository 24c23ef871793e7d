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

// Package metrics defines the scheduling core's observability sink and a Prometheus-backed
// implementation of it.
package metrics

// Recorder receives observations from a scheduling core as it runs. Every method must be safe to call
// from the goroutine holding the core's data mutex and must never block, retry, or panic: a Recorder
// is a side channel, never load-bearing for scheduling correctness.
type Recorder interface {
	// ObserveDispatch is called once per dispatched request, with the phase ("Reservation" or
	// "Priority") and the client's ID rendered as a string.
	ObserveDispatch(phase, clientID string)
	// ObserveQueueDepth is called once per client during every aging pass, reporting how many
	// requests are currently queued for it.
	ObserveQueueDepth(clientID string, depth int)
	// ObserveFutureWait is called whenever a scheduling pass decides nothing is dispatchable yet,
	// with the wait expressed in the scheduler's own virtual-time seconds (FutureTime - now), which
	// is not necessarily wall-clock time when callers pass synthetic Time values.
	ObserveFutureWait(waitSeconds float64)
}

// NoopRecorder discards every observation. It is the default Recorder so that constructing a
// Scheduler never requires a metrics backend.
type NoopRecorder struct{}

func (NoopRecorder) ObserveDispatch(string, string) {}
func (NoopRecorder) ObserveQueueDepth(string, int)  {}
func (NoopRecorder) ObserveFutureWait(float64)      {}
