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

package dmclock

import "github.com/foodotbar/dmclock/scheduler"

// Config is the top-level construction parameters for a Scheduler. It embeds the scheduling core's Config
// verbatim; the split into a root-level type exists so that callers only need to import this package, not
// scheduler, for the common case of constructing a Scheduler.
type Config struct {
	scheduler.Config
}

// ValidateAndApplyDefaults checks the configuration for validity and populates any zero-valued fields with
// system defaults, delegating to the embedded scheduler.Config. It returns a new, validated Config and does
// not mutate the receiver.
func (c Config) ValidateAndApplyDefaults() (*Config, error) {
	validated, err := c.Config.ValidateAndApplyDefaults()
	if err != nil {
		return nil, err
	}
	return &Config{Config: *validated}, nil
}
