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
	"container/list"

	"github.com/foodotbar/dmclock/types"
)

// queuedRequest pairs a request payload with the tag it was stamped with at submission time.
type queuedRequest[R any] struct {
	tag     types.RequestTag
	payload R
}

// ClientRec is the per-client scheduling record: immutable service parameters, the most recently submitted
// tag (the seed for the next one), the client's FIFO of pending requests, and the idle/aging bookkeeping
// described in the lifecycle manager. The priority package indexes ClientRecs by pointer identity; it does
// not hold index handles itself, matching the "weak back-pointer, no raw cycles" guidance for the
// registry/index relationship.
type ClientRec[C comparable, R any] struct {
	ID   C
	Info types.ClientInfo

	// PrevTag is the tag of the most recently submitted request; NextTag uses it as T_prev for the next one.
	PrevTag types.RequestTag

	requests *list.List // of *queuedRequest[R]

	// PropDelta corrects P at comparison time to compensate for virtual-time drift accrued while the client
	// was idle. See the idle re-entry correction in the scheduler package.
	PropDelta float64

	// Idle is true for a client that has not submitted recently enough to be considered active. Set on
	// construction (so the first submission always triggers the drift correction), cleared by add_request,
	// and set again by the periodic aging pass.
	Idle bool

	// LastTick is the scheduler's monotone submission counter as of this client's most recent touch; the
	// aging pass compares it against MarkPoints to decide idle/erase eligibility.
	LastTick uint64
}

func newClientRec[C comparable, R any](id C, info types.ClientInfo) *ClientRec[C, R] {
	return &ClientRec[C, R]{
		ID:       id,
		Info:     info,
		PrevTag:  types.ZeroTag,
		requests: list.New(),
		Idle:     true,
	}
}

// Head returns the tag and payload at the front of the client's FIFO, without removing it.
func (c *ClientRec[C, R]) Head() (types.RequestTag, R, bool) {
	front := c.requests.Front()
	if front == nil {
		var zero R
		return types.RequestTag{}, zero, false
	}
	qr := front.Value.(*queuedRequest[R])
	return qr.tag, qr.payload, true
}

// HeadTag returns just the tag at the front of the FIFO. A missing head reports a zero RequestTag and false;
// a zero tag compares smallest, so callers must check the flag (the priority orderings substitute +Inf
// sentinels for an empty FIFO).
func (c *ClientRec[C, R]) HeadTag() (types.RequestTag, bool) {
	front := c.requests.Front()
	if front == nil {
		return types.RequestTag{}, false
	}
	return front.Value.(*queuedRequest[R]).tag, true
}

// SetHeadReady promotes the Ready flag of the head request to true. It is a no-op if the FIFO is empty; the
// Ready transition is one-way and is only ever performed by the scheduler's limit-promotion loop.
func (c *ClientRec[C, R]) SetHeadReady() {
	if front := c.requests.Front(); front != nil {
		front.Value.(*queuedRequest[R]).tag.Ready = true
	}
}

// Enqueue appends a freshly tagged request to the back of the client's FIFO.
func (c *ClientRec[C, R]) Enqueue(tag types.RequestTag, payload R) {
	c.requests.PushBack(&queuedRequest[R]{tag: tag, payload: payload})
}

// Dequeue removes and returns the request at the front of the FIFO.
func (c *ClientRec[C, R]) Dequeue() (types.RequestTag, R, bool) {
	front := c.requests.Front()
	if front == nil {
		var zero R
		return types.RequestTag{}, zero, false
	}
	qr := c.requests.Remove(front).(*queuedRequest[R])
	return qr.tag, qr.payload, true
}

// Len returns the number of pending requests queued for this client.
func (c *ClientRec[C, R]) Len() int { return c.requests.Len() }

// DrainInto removes every pending request for this client, appending each (tag, payload) pair to sink, in
// FIFO order.
func (c *ClientRec[C, R]) DrainInto(sink func(types.RequestTag, R)) {
	for {
		tag, payload, ok := c.Dequeue()
		if !ok {
			return
		}
		sink(tag, payload)
	}
}

// ReduceReservationTags subtracts delta from the R coordinate of every request still queued for this client.
// It is the per-dispatch reservation-tag reduction: each time this client is served from the ready ordering
// rather than the reservation ordering, every one of its other outstanding reservations effectively moves
// delta seconds closer, since less of the client's own reserved capacity is owed elsewhere in its FIFO.
func (c *ClientRec[C, R]) ReduceReservationTags(delta float64) {
	for e := c.requests.Front(); e != nil; e = e.Next() {
		qr := e.Value.(*queuedRequest[R])
		qr.tag.R -= types.Time(delta)
	}
}

// RemoveMatching walks the FIFO once, in the given direction, removing every request for which predicate
// returns true and passing it to sink. It reports whether the head of the FIFO changed, so the caller knows
// whether the priority orderings need re-adjusting for this client.
func (c *ClientRec[C, R]) RemoveMatching(predicate func(types.RequestTag, R) bool, sink func(types.RequestTag, R), reverse bool) (headChanged bool) {
	oldHead, hadHead := c.HeadTag()

	var next func(*list.Element) *list.Element
	var start *list.Element
	if reverse {
		start, next = c.requests.Back(), func(e *list.Element) *list.Element { return e.Prev() }
	} else {
		start, next = c.requests.Front(), func(e *list.Element) *list.Element { return e.Next() }
	}

	for e := start; e != nil; {
		toRemove := e
		e = next(e)
		qr := toRemove.Value.(*queuedRequest[R])
		if predicate(qr.tag, qr.payload) {
			c.requests.Remove(toRemove)
			sink(qr.tag, qr.payload)
		}
	}

	newHead, hasHead := c.HeadTag()
	if hadHead != hasHead {
		return true
	}
	return hadHead && newHead != oldHead
}
