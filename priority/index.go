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

package priority

import "github.com/foodotbar/dmclock/registry"

// Index maintains the three orderings — reservation, limit, and ready — over the same set of clients. It
// holds no lock of its own; like the registry package, it assumes the scheduler package serializes all
// access to it under a single data mutex.
type Index[C comparable, R any] struct {
	reservation backing[C, R]
	limit       backing[C, R]
	ready       backing[C, R]
}

// NewIndex constructs an Index. useHeap selects the indexed-binary-heap backing for all three orderings
// when true, and the linear-scan vector backing when false; the choice is a construction-time parameter and
// does not change observable dispatch behavior.
func NewIndex[C comparable, R any](useHeap bool) *Index[C, R] {
	if useHeap {
		return &Index[C, R]{
			reservation: newHeapBacking[C, R](reservationLess[C, R]),
			limit:       newHeapBacking[C, R](limitLess[C, R]),
			ready:       newHeapBacking[C, R](readyLess[C, R]),
		}
	}
	return &Index[C, R]{
		reservation: newVectorBacking[C, R](reservationLess[C, R]),
		limit:       newVectorBacking[C, R](limitLess[C, R]),
		ready:       newVectorBacking[C, R](readyLess[C, R]),
	}
}

// Push inserts rec into all three orderings. The registry/index membership invariant requires that this be
// called exactly once, right after the client is first created in the registry.
func (idx *Index[C, R]) Push(rec *registry.ClientRec[C, R]) {
	idx.reservation.push(rec)
	idx.limit.push(rec)
	idx.ready.push(rec)
}

// Remove removes rec from all three orderings. Must be paired with removing rec from the registry, per the
// registry/index membership invariant.
func (idx *Index[C, R]) Remove(rec *registry.ClientRec[C, R]) {
	idx.reservation.remove(rec)
	idx.limit.remove(rec)
	idx.ready.remove(rec)
}

// Adjust re-places rec in all three orderings after its head tag or ready flag changed. Most mutations
// (submitting a request, dispatching one, promoting the ready flag) touch the head in a way that could
// affect any of the three keys, so this is the usual entry point.
func (idx *Index[C, R]) Adjust(rec *registry.ClientRec[C, R]) {
	idx.reservation.adjust(rec)
	idx.limit.adjust(rec)
	idx.ready.adjust(rec)
}

// AdjustReservation re-places rec in the reservation ordering only. The scheduling core's post-dispatch
// reservation-tag reduction touches only the R coordinate and is documented as re-adjusting "the reservation
// ordering only" — calling the full Adjust there would be harmless but wasteful.
func (idx *Index[C, R]) AdjustReservation(rec *registry.ClientRec[C, R]) {
	idx.reservation.adjust(rec)
}

// AdjustLimitAndReady re-places rec in the limit and ready orderings only, used by the ready-flag promotion
// loop, which never touches R.
func (idx *Index[C, R]) AdjustLimitAndReady(rec *registry.ClientRec[C, R]) {
	idx.limit.adjust(rec)
	idx.ready.adjust(rec)
}

// ReservationTop returns the client at the top of the reservation ordering, or nil if the index is empty.
func (idx *Index[C, R]) ReservationTop() *registry.ClientRec[C, R] { return idx.reservation.top() }

// LimitTop returns the client at the top of the limit ordering, or nil if the index is empty.
func (idx *Index[C, R]) LimitTop() *registry.ClientRec[C, R] { return idx.limit.top() }

// ReadyTop returns the client at the top of the ready ordering, or nil if the index is empty.
func (idx *Index[C, R]) ReadyTop() *registry.ClientRec[C, R] { return idx.ready.top() }

// Len returns the number of clients currently indexed (the same across all three orderings).
func (idx *Index[C, R]) Len() int { return idx.reservation.len() }
