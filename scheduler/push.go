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

// StartPush starts the push driver: a background goroutine that calls handle for every request as soon as
// it becomes dispatchable, without the caller polling. canHandle is consulted before every scheduling pass;
// returning false forces the pass to be skipped entirely (as if it had returned None), which is how a server
// that is momentarily saturated throttles the driver without the core needing to know why. AddRequest and
// RequestCompleted both wake the driver early when something it's waiting on might have changed. StopPush
// must be called exactly once to stop it.
//
// The driver's deadline handoff is governed by pushMu/pushCond, a lock entirely separate from the data mutex
// that guards the registry and index: the loop below releases pushMu before ever calling into a method that
// acquires the data mutex, so the two are never held together. This mirrors the original dmClock push
// server's sched_ahead thread, which sleeps on a condition variable bound to its own mutex rather than the
// request-queue's mutex.
func (c *Core[C, R]) StartPush(canHandle func() bool, handle func(client C, request R, phase types.Phase)) {
	c.pushDone = make(chan struct{})
	go c.runPushLoop(canHandle, handle)
}

// StopPush signals the push driver to stop and waits for it to exit. Any request already handed to handle
// before the signal is delivered still completes normally.
func (c *Core[C, R]) StopPush() {
	c.pushMu.Lock()
	c.pushFinishing = true
	c.stopPushTimerLocked()
	c.pushCond.Signal()
	c.pushMu.Unlock()

	<-c.pushDone
}

func (c *Core[C, R]) runPushLoop(canHandle func() bool, handle func(client C, request R, phase types.Phase)) {
	defer close(c.pushDone)

	for {
		c.pushMu.Lock()
		for !c.pushFinishing && !c.pushReady {
			c.pushCond.Wait()
		}
		if c.pushFinishing {
			c.pushMu.Unlock()
			return
		}
		c.pushReady = false
		c.pushMu.Unlock()

		if canHandle != nil && !canHandle() {
			// The server has no room right now. Don't run a pass at all; wait for request_completed (or a
			// new submission) to wake us again.
			continue
		}

		outcome := c.runSchedulingPass(c.Now())

		switch outcome.Kind {
		case OutcomeReturning:
			handle(outcome.Client, outcome.Request, outcome.Phase)
			// There may be more work ready right now; loop back around immediately rather than waiting for
			// another wake-up.
			c.wakePush()
		case OutcomeFuture:
			c.armPushTimer(outcome.FutureTime)
		case OutcomeNone:
			// Nothing to do until a new submission or a completion notification wakes the driver.
		}
	}
}

// wakePush marks the push driver ready to run another scheduling pass and signals it, canceling any armed
// deadline timer since whatever changed may have made something dispatchable sooner than that deadline.
func (c *Core[C, R]) wakePush() {
	c.pushMu.Lock()
	c.stopPushTimerLocked()
	c.pushReady = true
	c.pushCond.Signal()
	c.pushMu.Unlock()
}

// armPushTimer schedules a wake-up at deadline, unless the driver was already signaled ready in the meantime.
func (c *Core[C, R]) armPushTimer(deadline types.Time) {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	if c.pushReady || c.pushFinishing {
		return
	}
	c.stopPushTimerLocked()
	d := deadline.Sub(c.Now())
	if d < 0 {
		d = 0
	}
	c.pushTimer = c.clock.AfterFunc(d, func() {
		c.pushMu.Lock()
		c.pushReady = true
		c.pushCond.Signal()
		c.pushMu.Unlock()
	})
}

func (c *Core[C, R]) stopPushTimerLocked() {
	if c.pushTimer != nil {
		c.pushTimer.Stop()
		c.pushTimer = nil
	}
}
