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

package scheduler

import (
	"github.com/foodotbar/dmclock/metrics"
	"github.com/foodotbar/dmclock/registry"
)

// Config holds the scheduling core's construction-time behavioral switches, independent of client
// parameters.
type Config struct {
	// AllowLimitBreak enables the limit-break phase: when no client is reservation- or priority-eligible,
	// the top of the ready ordering is dispatched if its head's proportion tag is finite even though that
	// head is not yet ready (or, failing that, the top of the reservation ordering if its reservation tag is
	// finite), rather than leaving capacity idle while waiting for a limit to mature.
	// Optional: defaults to false.
	AllowLimitBreak bool

	// UseHeapBacking selects the indexed-binary-heap backing for the priority index when true, and the
	// linear-scan vector backing when false. Does not change observable dispatch behavior.
	// Optional: the zero value (false) selects the vector backing, appropriate for small client counts.
	UseHeapBacking bool

	// Registry holds the idle/lifecycle manager's timing parameters.
	Registry registry.Config

	// Recorder receives dispatch, queue-depth, and future-wait observations. Optional: defaults to
	// metrics.NoopRecorder{}, so constructing a Scheduler never requires a metrics backend.
	Recorder metrics.Recorder
}

// ValidateAndApplyDefaults checks the configuration for validity and populates any empty fields with system
// defaults. It delegates validation of the timing preconditions to the registry.Config in Registry. It returns
// a new, validated Config and does not mutate the receiver.
func (c Config) ValidateAndApplyDefaults() (*Config, error) {
	validatedRegistryCfg, err := c.Registry.ValidateAndApplyDefaults()
	if err != nil {
		return nil, err
	}
	c.Registry = *validatedRegistryCfg
	if c.Recorder == nil {
		c.Recorder = metrics.NoopRecorder{}
	}
	return &c, nil
}
