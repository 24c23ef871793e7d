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

import (
	"math"

	"github.com/foodotbar/dmclock/registry"
	"github.com/foodotbar/dmclock/types"
)

// lessFunc reports whether a sorts strictly before b in a given ordering: true means a has higher priority
// (closer to the top) than b. Each of the three orderings in this package is a concrete lessFunc rather than
// a type-parameterized comparator family, per the "three concrete comparators, not a generic family"
// guidance — correctness follows from the per-ordering contract, not from shared comparator machinery.
type lessFunc[C comparable, R any] func(a, b *registry.ClientRec[C, R]) bool

// effectiveHead returns the head tag a client contributes to the orderings below, substituting +Inf sentinel
// values (not ready) for a client with an empty FIFO. The reservation and ready orderings also check head
// presence first (see hasHead), so there an empty client sorts after every client with a pending request,
// even one whose own coordinate is +Inf. The limit order has no presence check: an empty client counts as
// not ready with L = +Inf, so it sorts after every not-ready head and before every ready head.
func effectiveHead[C comparable, R any](rec *registry.ClientRec[C, R]) types.RequestTag {
	if tag, ok := rec.HeadTag(); ok {
		return tag
	}
	return types.RequestTag{
		R:     types.Time(math.Inf(1)),
		P:     types.Time(math.Inf(1)),
		L:     types.Time(math.Inf(1)),
		Ready: false,
	}
}

// hasHead reports whether rec has at least one pending request.
func hasHead[C comparable, R any](rec *registry.ClientRec[C, R]) bool {
	return rec.Len() > 0
}

// reservationLess implements the reservation order: ascending by head.R. A client with no pending request
// sorts after every client with one, including one whose head R is +Inf (reservation disabled).
func reservationLess[C comparable, R any](a, b *registry.ClientRec[C, R]) bool {
	if ha, hb := hasHead(a), hasHead(b); ha != hb {
		return ha
	}
	return effectiveHead(a).R < effectiveHead(b).R
}

// limitLess implements the limit order: not-yet-ready heads sort before already-ready ones, and within equal
// readiness, ascending by head.L. This adopts the heap-backed comparator's polarity (ready=false primary, L
// secondary) as authoritative, per the open question in the design notes: a client whose head has already
// matured (ready=true) must drop to the back of this ordering so the promotion loop in select.go keeps
// finding every other not-yet-ready client whose L has also matured, rather than stopping after the single
// smallest-L client.
func limitLess[C comparable, R any](a, b *registry.ClientRec[C, R]) bool {
	ta, tb := effectiveHead(a), effectiveHead(b)
	if ta.Ready != tb.Ready {
		return !ta.Ready // false (not ready) sorts first
	}
	return ta.L < tb.L
}

// readyLess implements the ready order: ready=true strictly precedes ready=false; within equal readiness,
// ascending by head.P + client.PropDelta. A client with no pending request sorts after every client with one,
// regardless of PropDelta.
func readyLess[C comparable, R any](a, b *registry.ClientRec[C, R]) bool {
	if ha, hb := hasHead(a), hasHead(b); ha != hb {
		return ha
	}
	ta, tb := effectiveHead(a), effectiveHead(b)
	if ta.Ready != tb.Ready {
		return ta.Ready
	}
	pa := float64(ta.P) + a.PropDelta
	pb := float64(tb.P) + b.PropDelta
	return pa < pb
}
