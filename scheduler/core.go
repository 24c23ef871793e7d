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
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/foodotbar/dmclock/metrics"
	"github.com/foodotbar/dmclock/priority"
	"github.com/foodotbar/dmclock/registry"
	"github.com/foodotbar/dmclock/types"
)

// Core is the scheduling core described by the component design: a client registry, a three-ordering
// priority index over the same clients, and the tag-stamping, selection, and aging logic that ties them
// together. A single mutex guards the registry, the index, the MarkPoint deque, the tick counter, and every
// per-client field that selection or aging touches; no method suspends while holding it.
//
// Core is generic over the client identity type C and the opaque request payload type R: it moves requests
// around and compares their tags, but never inspects their contents.
type Core[C comparable, R any] struct {
	mu sync.Mutex

	registry *registry.ClientRegistry[C, R]
	index    *priority.Index[C, R]
	clock    clock.WithTickerAndDelayedExecution
	cfg      Config
	logger   logr.Logger
	metrics  metrics.Recorder

	tick       uint64
	markpoints *registry.MarkPointLog

	reservSchedCount     atomic.Uint64
	propSchedCount       atomic.Uint64
	limitBreakSchedCount atomic.Uint64

	stopAging chan struct{}
	agingDone chan struct{}

	// pushMu and pushCond implement the push driver's deadline handoff, entirely separate from mu (the data
	// mutex). The push loop always releases pushMu before it acquires mu, so the two are never held together.
	pushMu        sync.Mutex
	pushCond      *sync.Cond
	pushReady     bool
	pushFinishing bool
	pushTimer     clock.Timer
	pushDone      chan struct{}
}

// New constructs a scheduling core. clientInfoFn is invoked at most once per client, lazily, on that
// client's first submission. A background goroutine runs the idle/lifecycle aging pass every
// cfg.Registry.CheckTime until Close is called.
func New[C comparable, R any](clientInfoFn types.ClientInfoFunc[C], cfg Config, clk clock.WithTickerAndDelayedExecution, logger logr.Logger) (*Core[C, R], error) {
	validated, err := cfg.ValidateAndApplyDefaults()
	if err != nil {
		return nil, err
	}
	core := &Core[C, R]{
		registry:   registry.New[C, R](clientInfoFn, logger),
		index:      priority.NewIndex[C, R](validated.UseHeapBacking),
		clock:      clk,
		cfg:        *validated,
		logger:     logger.WithName("scheduling-core"),
		metrics:    validated.Recorder,
		markpoints: registry.NewMarkPointLog(),
		stopAging:  make(chan struct{}),
		agingDone:  make(chan struct{}),
	}
	core.pushCond = sync.NewCond(&core.pushMu)
	go core.runAgingLoop()
	return core, nil
}

// Close stops the background aging goroutine. It does not drain or dispatch any pending requests, and it
// does not stop the push driver; call StopPush first if StartPush was used.
func (c *Core[C, R]) Close() {
	close(c.stopAging)
	<-c.agingDone
}

// Now returns the core's injected clock's current time, used as the default for submission and pull calls
// that omit an explicit timestamp.
func (c *Core[C, R]) Now() types.Time {
	return types.FromStdTime(c.clock.Now())
}

// AddRequest is the single submission entry point shared by both facades. It performs the idle re-entry
// drift correction (if the client was idle), stamps the request with its tag via the tag calculator,
// appends it to the client's FIFO, and re-adjusts that client's position in every ordering.
func (c *Core[C, R]) AddRequest(request R, clientID C, params types.ReqParams, now types.Time, cost float64) error {
	c.mu.Lock()
	err := c.addRequestLocked(request, clientID, params, now, cost)
	c.mu.Unlock()

	// wakePush acquires pushMu, a lock distinct from the data mutex just released above; the two are never
	// held at once, matching the lock-ordering rule the push driver depends on.
	if err == nil {
		c.wakePush()
	}
	return err
}

func (c *Core[C, R]) addRequestLocked(request R, clientID C, params types.ReqParams, now types.Time, cost float64) error {
	rec, created := c.registry.GetOrCreate(clientID)
	if created {
		c.index.Push(rec)
	}

	if rec.Idle {
		c.correctIdleDriftLocked(rec, now)
		rec.Idle = false
	}

	tag, err := types.NextTag(rec.PrevTag, rec.Info, params, now, cost)
	if err != nil {
		return err
	}

	c.tick++
	rec.Enqueue(tag, request)
	rec.PrevTag = tag
	rec.LastTick = c.tick
	c.index.Adjust(rec)
	return nil
}

// correctIdleDriftLocked implements the idle re-entry correction: scan every other non-idle client with a
// pending request for the smallest effective proportion tag currently in play, and pin rec's PropDelta so
// its next comparison starts from that virtual front rather than from its own stale prior tag.
func (c *Core[C, R]) correctIdleDriftLocked(rec *registry.ClientRec[C, R], now types.Time) {
	minActive := math.Inf(1)
	found := false
	c.registry.All(func(other *registry.ClientRec[C, R]) {
		if other == rec || other.Idle {
			return
		}
		head, ok := other.HeadTag()
		if !ok {
			return
		}
		candidate := float64(head.P) + other.PropDelta
		if candidate < minActive {
			minActive = candidate
			found = true
		}
	})
	if found {
		rec.PropDelta = minActive - float64(now)
	}
}

// ClientCount returns the number of registered clients.
func (c *Core[C, R]) ClientCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Len()
}

// RequestCount returns the total number of pending requests across every registered client.
func (c *Core[C, R]) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.RequestCount()
}

// Empty reports whether there are no pending requests anywhere in the scheduler.
func (c *Core[C, R]) Empty() bool {
	return c.RequestCount() == 0
}

// RemoveByClient drains id's entire FIFO into sink in submission order, removing it from the registry's
// bookkeeping but leaving the client registered (it simply becomes an empty-queued client, which compares
// greatest in every ordering). It is a silent no-op for an unknown client.
func (c *Core[C, R]) RemoveByClient(id C, sink func(R)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.registry.Find(id)
	if !ok {
		return
	}
	if c.registry.RemoveByClient(id, func(_ types.RequestTag, payload R) {
		if sink != nil {
			sink(payload)
		}
	}) {
		c.index.Adjust(rec)
	}
}

// RemoveByReqFilter removes every pending request (across every client) for which predicate returns true,
// passing each to sink. direction selects forward (reverse=false) or reverse FIFO traversal per client; the
// predicate is evaluated once per request.
func (c *Core[C, R]) RemoveByReqFilter(predicate func(R) bool, sink func(R), reverse bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := c.registry.RemoveByReqFilter(func(_ types.RequestTag, payload R) bool {
		return predicate(payload)
	}, func(_ types.RequestTag, payload R) {
		if sink != nil {
			sink(payload)
		}
	}, reverse)

	for _, rec := range changed {
		c.index.Adjust(rec)
	}
}

// RequestCompleted notifies the core that a previously dispatched request has finished, freeing whatever
// external capacity limited how many requests could be in flight at once. The core does not track in-flight
// requests itself; this is purely a wake-up hint for the push driver, which may have been waiting for a
// future reservation or limit deadline that is now moot because capacity freed up early.
func (c *Core[C, R]) RequestCompleted() {
	c.wakePush()
}

// ReservSchedCount returns the number of requests dispatched via the reservation phase.
func (c *Core[C, R]) ReservSchedCount() uint64 { return c.reservSchedCount.Load() }

// PropSchedCount returns the number of requests dispatched via the ordinary priority phase.
func (c *Core[C, R]) PropSchedCount() uint64 { return c.propSchedCount.Load() }

// LimitBreakSchedCount returns the number of requests dispatched via the proportional-heap branch, which
// this implementation does not enable: limit-break dispatches sourced from the reservation or ready ordering
// count toward ReservSchedCount or PropSchedCount instead, so this stays zero here.
func (c *Core[C, R]) LimitBreakSchedCount() uint64 { return c.limitBreakSchedCount.Load() }
