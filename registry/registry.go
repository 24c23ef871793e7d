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
	"github.com/go-logr/logr"

	"github.com/foodotbar/dmclock/types"
)

// ClientRegistry maps client IDs to ClientRecs. It is the sole owner of each ClientRec; the priority
// package's orderings hold only a non-owning pointer back into it, per the registry/index invariant that a
// client appears in the registry iff it appears in the index.
//
// ClientRegistry is not itself goroutine-safe: every method assumes the caller (the scheduler package) holds
// the single data mutex for the full duration of the call, exactly as it does for the priority package's
// orderings.
type ClientRegistry[C comparable, R any] struct {
	clients      map[C]*ClientRec[C, R]
	clientInfoFn types.ClientInfoFunc[C]
	logger       logr.Logger
}

// New constructs a ClientRegistry that lazily creates ClientRecs via clientInfoFn.
func New[C comparable, R any](clientInfoFn types.ClientInfoFunc[C], logger logr.Logger) *ClientRegistry[C, R] {
	return &ClientRegistry[C, R]{
		clients:      make(map[C]*ClientRec[C, R]),
		clientInfoFn: clientInfoFn,
		logger:       logger.WithName("client-registry"),
	}
}

// GetOrCreate returns the existing record for id, or constructs one (via the registry's ClientInfoFunc) and
// inserts it if none exists yet. The caller is responsible for inserting newly created records into the
// priority package's orderings; GetOrCreate reports whether it created a new record so the caller knows
// when that's necessary.
func (reg *ClientRegistry[C, R]) GetOrCreate(id C) (rec *ClientRec[C, R], created bool) {
	if rec, ok := reg.clients[id]; ok {
		return rec, false
	}
	info := reg.clientInfoFn(id)
	rec = newClientRec[C, R](id, info)
	reg.clients[id] = rec
	reg.logger.V(2).Info("registered new client", "client", id, "reservation", info.Reservation, "weight", info.Weight, "limit", info.Limit)
	return rec, true
}

// Find returns the record for id, if one exists.
func (reg *ClientRegistry[C, R]) Find(id C) (*ClientRec[C, R], bool) {
	rec, ok := reg.clients[id]
	return rec, ok
}

// Erase removes id's record from the registry. The caller must also remove it from every priority ordering;
// Erase does not do so itself since the registry has no reference to the index.
func (reg *ClientRegistry[C, R]) Erase(id C) {
	delete(reg.clients, id)
}

// Len returns the number of registered clients.
func (reg *ClientRegistry[C, R]) Len() int { return len(reg.clients) }

// RequestCount returns the total number of pending requests across every registered client.
func (reg *ClientRegistry[C, R]) RequestCount() int {
	total := 0
	for _, rec := range reg.clients {
		total += rec.Len()
	}
	return total
}

// All calls fn for every registered client record. fn must not mutate the registry's client set.
func (reg *ClientRegistry[C, R]) All(fn func(*ClientRec[C, R])) {
	for _, rec := range reg.clients {
		fn(rec)
	}
}

// RemoveByClient drains id's entire FIFO into sink, in submission order. It is a silent no-op for an unknown
// client. It reports whether the client's head changed (always true if anything was removed), so the caller
// can re-adjust that client's position in every priority ordering.
func (reg *ClientRegistry[C, R]) RemoveByClient(id C, sink func(types.RequestTag, R)) (headChanged bool) {
	rec, ok := reg.clients[id]
	if !ok {
		return false
	}
	hadAny := rec.Len() > 0
	rec.DrainInto(sink)
	return hadAny
}

// RemoveByReqFilter walks every registered client's FIFO once, in the given direction, removing every request
// for which predicate returns true and passing it to sink. It returns the set of clients whose head element
// may have changed, so the caller can re-adjust exactly those clients' positions in every priority ordering.
func (reg *ClientRegistry[C, R]) RemoveByReqFilter(predicate func(types.RequestTag, R) bool, sink func(types.RequestTag, R), reverse bool) []*ClientRec[C, R] {
	var changed []*ClientRec[C, R]
	for _, rec := range reg.clients {
		if rec.RemoveMatching(predicate, sink, reverse) {
			changed = append(changed, rec)
		}
	}
	return changed
}
