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

// Package dmclock implements the dmClock distributed QoS scheduling algorithm: per-client reservation,
// weight, and limit parameters are honored by stamping every request with a three-coordinate tag and always
// dispatching whichever pending request's tag makes it most urgent, across a pull (caller-driven) or push
// (callback-driven) facade sharing the same scheduling core.
package dmclock

import (
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/foodotbar/dmclock/scheduler"
	"github.com/foodotbar/dmclock/types"
)

// Re-exported so callers of this package don't also need to import types for everyday use. ClientInfoFunc and
// Outcome stay qualified as scheduler.Outcome[C, R] / types.ClientInfoFunc[C] at their use sites below: a
// type alias cannot itself introduce new type parameters.
type (
	// ClientInfo holds a client's reservation, weight, and limit service parameters.
	ClientInfo = types.ClientInfo
	// ReqParams carries the distributed feedback counts (rho, delta) that accompany a submission.
	ReqParams = types.ReqParams
	// Time is a real-valued, monotonic seconds-since-epoch timestamp.
	Time = types.Time
	// Phase classifies how a dispatched request was selected: Reservation or Priority.
	Phase = types.Phase
	// OutcomeKind discriminates the shapes an Outcome can take.
	OutcomeKind = scheduler.OutcomeKind
)

const (
	PhaseReservation = types.PhaseReservation
	PhasePriority    = types.PhasePriority

	OutcomeNone      = scheduler.OutcomeNone
	OutcomeFuture    = scheduler.OutcomeFuture
	OutcomeReturning = scheduler.OutcomeReturning
)

// NewClientInfo constructs a ClientInfo from the three service parameters.
func NewClientInfo(reservation, weight, limit float64) ClientInfo {
	return types.NewClientInfo(reservation, weight, limit)
}

// Scheduler is a dmClock scheduling core parameterized over an opaque client identity type C and an opaque
// request payload type R. It is the package's sole public entry point; construct one with New and interact
// with it through AddRequest plus either PullRequest or StartPush/StopPush, never both facades on the same
// instance in a way that assumes the other isn't running — they share state safely, but a server design
// should pick one discipline.
type Scheduler[C comparable, R any] struct {
	core *scheduler.Core[C, R]
}

// New constructs a Scheduler. clientInfoFn is invoked at most once per client, lazily, the first time that
// client submits a request. clk supplies the time source the idle/lifecycle manager and push driver use for
// their own bookkeeping; submissions and pulls may still pass an explicit Time to decouple algorithmic time
// from wall time entirely, as tests do.
func New[C comparable, R any](clientInfoFn types.ClientInfoFunc[C], cfg Config, clk clock.WithTickerAndDelayedExecution, logger logr.Logger) (*Scheduler[C, R], error) {
	core, err := scheduler.New[C, R](clientInfoFn, cfg.Config, clk, logger)
	if err != nil {
		return nil, err
	}
	return &Scheduler[C, R]{core: core}, nil
}

// Close stops the background idle/lifecycle aging goroutine. Call StopPush first if StartPush was used.
func (s *Scheduler[C, R]) Close() { s.core.Close() }

// Now returns the scheduler's injected clock's current time.
func (s *Scheduler[C, R]) Now() Time { return s.core.Now() }

// AddRequest submits request on behalf of clientID, stamping it with a tag computed from params, now, and
// cost, and appending it to that client's FIFO. now and cost may be zero-valued; params defaults to
// {Rho: 0, Delta: 0} via its own zero value. It returns types.ErrClientParametersRejected if clientID's
// ClientInfo has both Reservation and Weight disabled.
func (s *Scheduler[C, R]) AddRequest(request R, clientID C, params ReqParams, now Time, cost float64) error {
	return s.core.AddRequest(request, clientID, params, now, cost)
}

// PullRequest runs one scheduling pass and reports its outcome: nothing dispatchable, a future deadline to
// wait for, or a request that has just been popped and returned to the caller. now defaults to the
// scheduler's injected clock if omitted.
func (s *Scheduler[C, R]) PullRequest(now ...Time) scheduler.Outcome[C, R] {
	return s.core.PullRequest(now...)
}

// StartPush starts the push driver: a background goroutine that calls handle for every request as soon as it
// becomes dispatchable. canHandle is consulted before every pass; returning false suppresses dispatch until
// the driver is woken again by a submission or a RequestCompleted call. StopPush must be called exactly once
// to stop it.
func (s *Scheduler[C, R]) StartPush(canHandle func() bool, handle func(client C, request R, phase Phase)) {
	s.core.StartPush(canHandle, handle)
}

// StopPush signals the push driver to stop and waits for it to exit.
func (s *Scheduler[C, R]) StopPush() { s.core.StopPush() }

// RequestCompleted notifies the scheduler that a previously dispatched request has finished, waking the push
// driver in case capacity freed up early. It has no effect on the pull facade.
func (s *Scheduler[C, R]) RequestCompleted() { s.core.RequestCompleted() }

// RemoveByClient drains clientID's entire FIFO into sink, in submission order. It is a silent no-op for an
// unknown client. sink may be nil to simply discard the drained requests.
func (s *Scheduler[C, R]) RemoveByClient(clientID C, sink func(R)) {
	s.core.RemoveByClient(clientID, sink)
}

// RemoveByReqFilter removes every pending request, across every client, for which predicate returns true,
// passing each removed request to sink (which may be nil). reverse selects reverse FIFO traversal per client
// instead of forward.
func (s *Scheduler[C, R]) RemoveByReqFilter(predicate func(R) bool, sink func(R), reverse bool) {
	s.core.RemoveByReqFilter(predicate, sink, reverse)
}

// ClientCount returns the number of registered clients.
func (s *Scheduler[C, R]) ClientCount() int { return s.core.ClientCount() }

// RequestCount returns the total number of pending requests across every registered client.
func (s *Scheduler[C, R]) RequestCount() int { return s.core.RequestCount() }

// Empty reports whether there are no pending requests anywhere in the scheduler.
func (s *Scheduler[C, R]) Empty() bool { return s.core.Empty() }

// ReservSchedCount returns the number of requests dispatched via the reservation phase.
func (s *Scheduler[C, R]) ReservSchedCount() uint64 { return s.core.ReservSchedCount() }

// PropSchedCount returns the number of requests dispatched via the ordinary priority phase.
func (s *Scheduler[C, R]) PropSchedCount() uint64 { return s.core.PropSchedCount() }

// LimitBreakSchedCount returns the number of requests dispatched via the proportional-heap branch, which
// this implementation does not enable and so always returns zero; see ReservSchedCount and PropSchedCount
// for where limit-break dispatches are actually counted.
func (s *Scheduler[C, R]) LimitBreakSchedCount() uint64 { return s.core.LimitBreakSchedCount() }
