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
	"fmt"

	"github.com/foodotbar/dmclock/registry"
)

// runAgingLoop is the idle/lifecycle manager's background goroutine: every cfg.Registry.CheckTime it runs one
// aging pass, until Close signals stopAging. It owns no state other than the ticker; every pass acquires c.mu
// for its own duration and releases it before the next tick, so it never suspends while holding the data
// mutex.
func (c *Core[C, R]) runAgingLoop() {
	defer close(c.agingDone)

	ticker := c.clock.NewTicker(c.cfg.Registry.CheckTime)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopAging:
			return
		case <-ticker.C():
			c.runAgingPass()
		}
	}
}

// runAgingPass is the four-step idle/lifecycle manager pass: record a MarkPoint for this tick, sweep the
// MarkPoint deque for the current erase/idle tick thresholds, then erase or idle-mark every client whose
// LastTick falls at or behind the corresponding threshold. Erasure is deferred until after the scan so the
// registry's client map is never mutated while being iterated.
func (c *Core[C, R]) runAgingPass() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	c.markpoints.Record(now, c.tick)
	thresholds := c.markpoints.Sweep(now, c.cfg.Registry.IdleAge.Seconds(), c.cfg.Registry.EraseAge.Seconds())

	var toErase []*registry.ClientRec[C, R]
	c.registry.All(func(rec *registry.ClientRec[C, R]) {
		c.metrics.ObserveQueueDepth(fmt.Sprint(rec.ID), rec.Len())
		switch {
		case thresholds.EraseTick > 0 && rec.LastTick <= thresholds.EraseTick:
			toErase = append(toErase, rec)
		case thresholds.IdleTick > 0 && rec.LastTick <= thresholds.IdleTick:
			rec.Idle = true
		}
	})

	for _, rec := range toErase {
		c.registry.Erase(rec.ID)
		c.index.Remove(rec)
	}
}
