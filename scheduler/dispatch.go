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
	"github.com/foodotbar/dmclock/types"
)

// dispatchLocked pops the head request from the client selectLocked chose, re-adjusts that client's position
// in every ordering, bumps the appropriate observability counter, and, for a ready-source dispatch, performs
// the post-dispatch reservation-tag reduction. The caller must hold c.mu and must only call this with a
// source that selectLocked actually returned kindReturning for.
//
// limitBreak only distinguishes step 5 (limit-break phase) from steps 2/4 for logging; it does not change
// which counter is bumped. A limit-break dispatch is still sourced from the reservation or ready ordering and
// counts toward reserv_sched_count or prop_sched_count accordingly, matching the reference source's own
// accounting: limit_break_sched_count is reserved for the (unimplemented here) proportional-heap dispatch
// branch and stays at zero in this implementation.
func (c *Core[C, R]) dispatchLocked(src source, limitBreak bool, now types.Time) (C, R, types.Phase) {
	rec := c.topFor(src)

	_, request, ok := rec.Dequeue()
	if !ok {
		// selectLocked only ever returns kindReturning for a client with a head; a missing head here would be
		// a bug in the caller, not a normal runtime condition. Fall through with the zero request rather than
		// panic, since dispatchLocked has no error return.
		var zero R
		request = zero
	}
	c.index.Adjust(rec)

	if src == sourceReservation {
		c.reservSchedCount.Add(1)
	} else {
		c.propSchedCount.Add(1)
	}

	if src == sourceReady {
		c.reduceReservationTagsLocked(rec)
	}

	phase := phaseFor(src)
	c.logger.V(2).Info("dispatched request", "client", rec.ID, "phase", phase.String(), "limitBreak", limitBreak)
	c.metrics.ObserveDispatch(phase.String(), fmt.Sprint(rec.ID))

	return rec.ID, request, phase
}

func (c *Core[C, R]) topFor(src source) *registry.ClientRec[C, R] {
	if src == sourceReservation {
		return c.index.ReservationTop()
	}
	return c.index.ReadyTop()
}

func phaseFor(src source) types.Phase {
	if src == sourceReservation {
		return types.PhaseReservation
	}
	return types.PhasePriority
}

// reduceReservationTagsLocked implements the reservation-tag reduction that follows every dispatch sourced
// from the ready ordering: every request still queued for this client, plus the client's seed tag for its
// next request, has its R coordinate pulled delta = 1/r seconds closer. Only the reservation ordering is
// re-adjusted afterward, per the documented scope of this step. A client with the reservation axis disabled
// has delta == 0 and the call is a no-op.
func (c *Core[C, R]) reduceReservationTagsLocked(rec *registry.ClientRec[C, R]) {
	delta := rec.Info.InvReservation()
	if delta == 0 {
		return
	}
	rec.ReduceReservationTags(delta)
	rec.PrevTag.R -= types.Time(delta)
	c.index.AdjustReservation(rec)
}
