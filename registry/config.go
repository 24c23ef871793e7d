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

package registry

import (
	"fmt"
	"time"
)

const (
	// defaultIdleAge is how long a client may go without submitting before the aging pass marks it idle.
	defaultIdleAge = 10 * time.Second
	// defaultEraseAge is how long a client may go without submitting before it is erased from the registry.
	defaultEraseAge = 60 * time.Second
	// defaultCheckTime is how often the aging pass runs.
	defaultCheckTime = 1 * time.Second
)

// Config holds the idle/lifecycle manager's timing parameters.
type Config struct {
	// IdleAge is the inactivity horizon after which a client is marked idle.
	// Optional: defaults to defaultIdleAge.
	IdleAge time.Duration
	// EraseAge is the inactivity horizon after which a client is erased from the registry and the priority
	// index entirely. Required: EraseAge >= IdleAge.
	// Optional: defaults to defaultEraseAge.
	EraseAge time.Duration
	// CheckTime is the interval at which the aging pass runs. Required: CheckTime < IdleAge.
	// Optional: defaults to defaultCheckTime.
	CheckTime time.Duration
}

// ValidateAndApplyDefaults checks the configuration for validity and populates any zero-valued fields with
// system defaults. It returns a new, validated Config and does not mutate the receiver.
//
// The two timing preconditions below are the registry's only construction-time invariants; violating either
// one would let the aging pass erase a client before it was ever marked idle, or race the idle/erase horizons
// against each other.
func (c Config) ValidateAndApplyDefaults() (*Config, error) {
	if c.IdleAge == 0 {
		c.IdleAge = defaultIdleAge
	}
	if c.EraseAge == 0 {
		c.EraseAge = defaultEraseAge
	}
	if c.CheckTime == 0 {
		c.CheckTime = defaultCheckTime
	}

	if c.EraseAge < c.IdleAge {
		return nil, fmt.Errorf("dmclock: EraseAge (%s) must be >= IdleAge (%s)", c.EraseAge, c.IdleAge)
	}
	if c.CheckTime >= c.IdleAge {
		return nil, fmt.Errorf("dmclock: CheckTime (%s) must be < IdleAge (%s)", c.CheckTime, c.IdleAge)
	}

	return &c, nil
}
