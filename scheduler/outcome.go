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

// OutcomeKind discriminates the three shapes a scheduling pass can report to a caller of the pull facade.
type OutcomeKind int

const (
	// OutcomeNone means nothing is currently dispatchable and nothing will become so without a new
	// submission: the index is empty, or its reservation-top client has no pending request.
	OutcomeNone OutcomeKind = iota
	// OutcomeFuture means nothing is dispatchable right now, but something will mature at FutureTime.
	OutcomeFuture
	// OutcomeReturning means a request was popped and is being handed to the caller.
	OutcomeReturning
)

// Outcome is the result of one scheduling pass: either nothing, a future deadline to wait for, or a request
// that has just been dispatched.
type Outcome[C comparable, R any] struct {
	Kind       OutcomeKind
	FutureTime types.Time
	Client     C
	Request    R
	Phase      types.Phase
}

// runSchedulingPass acquires the data mutex and runs one scheduling pass. It is the shared core of both
// facades: PullRequest calls it directly, and the push driver's loop calls it once per wake-up.
func (c *Core[C, R]) runSchedulingPass(now types.Time) Outcome[C, R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runSchedulingPassLocked(now)
}

// runSchedulingPassLocked runs the next-request selection state machine and, if it decided something is
// dispatchable, immediately dispatches it. The caller must hold c.mu.
func (c *Core[C, R]) runSchedulingPassLocked(now types.Time) Outcome[C, R] {
	result := c.selectLocked(now)
	switch result.kind {
	case kindNone:
		return Outcome[C, R]{Kind: OutcomeNone}
	case kindFuture:
		c.metrics.ObserveFutureWait(float64(result.futureTime - now))
		return Outcome[C, R]{Kind: OutcomeFuture, FutureTime: result.futureTime}
	default:
		clientID, request, phase := c.dispatchLocked(result.src, result.limitBreak, now)
		return Outcome[C, R]{Kind: OutcomeReturning, Client: clientID, Request: request, Phase: phase}
	}
}
