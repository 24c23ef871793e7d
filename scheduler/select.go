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

	"github.com/foodotbar/dmclock/types"
)

// source identifies which top client a pending dispatch will pop from. It is an internal selection
// discriminant; the Phase reported to callers is derived from it (Reservation source -> PhaseReservation,
// Ready source -> PhasePriority).
type source int

const (
	sourceReservation source = iota
	sourceReady
)

// outcomeKind discriminates the three shapes next_request can report.
type outcomeKind int

const (
	kindNone outcomeKind = iota
	kindFuture
	kindReturning
)

// selectionResult is the internal result of the next-request state machine, before dispatch has actually
// popped anything.
type selectionResult struct {
	kind       outcomeKind
	src        source
	limitBreak bool
	futureTime types.Time
}

// selectLocked runs the six-step next_request state machine. It mutates ready flags as a side effect (step
// 3 is a promotion loop that runs whenever step 2 does not dispatch, regardless of what step 4 decides), but it does not
// pop anything from any client's FIFO — that is dispatchLocked's job.
func (c *Core[C, R]) selectLocked(now types.Time) selectionResult {
	if c.index.Len() == 0 {
		return selectionResult{kind: kindNone}
	}

	resvTop := c.index.ReservationTop()
	resvHead, resvHasHead := resvTop.HeadTag()
	if !resvHasHead {
		return selectionResult{kind: kindNone}
	}

	// Step 2: reservation phase.
	if resvHead.R <= now {
		return selectionResult{kind: kindReturning, src: sourceReservation}
	}

	// Step 3: ready-flag promotion loop.
	for {
		limitTop := c.index.LimitTop()
		head, ok := limitTop.HeadTag()
		if !ok || head.Ready || head.L > now {
			break
		}
		limitTop.SetHeadReady()
		c.index.AdjustLimitAndReady(limitTop)
	}

	// Step 4: priority phase.
	readyTop := c.index.ReadyTop()
	readyHead, readyHasHead := readyTop.HeadTag()
	if readyHasHead && readyHead.Ready && !isInf(readyHead.P) {
		return selectionResult{kind: kindReturning, src: sourceReady}
	}

	// Step 5: limit-break phase.
	if c.cfg.AllowLimitBreak {
		if readyHasHead && !isInf(readyHead.P) {
			return selectionResult{kind: kindReturning, src: sourceReady, limitBreak: true}
		}
		resvTop2 := c.index.ReservationTop()
		resvHead2, ok := resvTop2.HeadTag()
		if ok && !isInf(resvHead2.R) {
			return selectionResult{kind: kindReturning, src: sourceReservation, limitBreak: true}
		}
	}

	// Step 6: future timer, ignoring zero-valued and infinite (disabled-axis) components.
	tStar := types.Time(math.Inf(1))
	have := false
	if resvHasHead && resvHead.R != 0 && !isInf(resvHead.R) && resvHead.R < tStar {
		tStar = resvHead.R
		have = true
	}
	limitTop := c.index.LimitTop()
	if limitHead, ok := limitTop.HeadTag(); ok && limitHead.L != 0 && !isInf(limitHead.L) && limitHead.L < tStar {
		tStar = limitHead.L
		have = true
	}
	if !have {
		return selectionResult{kind: kindNone}
	}
	return selectionResult{kind: kindFuture, futureTime: tStar}
}

func isInf(t types.Time) bool {
	return math.IsInf(float64(t), 0)
}
