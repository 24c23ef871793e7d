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

import "github.com/foodotbar/dmclock/types"

// PullRequest is the pull facade: a caller-driven scheduling pass. It runs the next-request selection state
// machine once and, if a request is dispatchable, pops and returns it. now defaults to the core's injected
// clock if omitted; passing it explicitly is mainly useful for tests and for callers that batch several pull
// calls against a single captured timestamp.
func (c *Core[C, R]) PullRequest(now ...types.Time) Outcome[C, R] {
	return c.runSchedulingPass(c.resolveNow(now))
}

func (c *Core[C, R]) resolveNow(now []types.Time) types.Time {
	if len(now) > 0 {
		return now[0]
	}
	return c.Now()
}
