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

// heapBacking is an indexed binary min-heap: the usual array-backed heap, plus a side table from client
// identity to its current slot so that adjust() and remove() run in O(log n) instead of requiring a linear
// scan to locate the client first. This handle-plus-index-map technique is the same one a max-min heap
// queue implementation uses for O(log n) arbitrary removal; here it backs a plain single-ended heap since
// each ordering only ever needs its top, not both extremes.
type heapBacking[C comparable, R any] struct {
	items []*registry.ClientRec[C, R]
	pos   map[*registry.ClientRec[C, R]]int
	less  lessFunc[C, R]
}

func newHeapBacking[C comparable, R any](less lessFunc[C, R]) *heapBacking[C, R] {
	return &heapBacking[C, R]{
		pos:  make(map[*registry.ClientRec[C, R]]int),
		less: less,
	}
}

func (h *heapBacking[C, R]) len() int { return len(h.items) }

func (h *heapBacking[C, R]) top() *registry.ClientRec[C, R] {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

func (h *heapBacking[C, R]) push(rec *registry.ClientRec[C, R]) {
	h.items = append(h.items, rec)
	i := len(h.items) - 1
	h.pos[rec] = i
	h.siftUp(i)
}

func (h *heapBacking[C, R]) remove(rec *registry.ClientRec[C, R]) {
	i, ok := h.pos[rec]
	if !ok {
		return
	}
	last := len(h.items) - 1
	h.swap(i, last)
	h.items = h.items[:last]
	delete(h.pos, rec)
	if i < last {
		h.siftDown(i)
		h.siftUp(i)
	}
}

// adjust re-places rec after its head tag or ready flag changed. Since only the changed client's key moved,
// a sift in the direction it could have moved is sufficient; trying both is cheap and keeps this correct
// regardless of whether the key increased or decreased.
func (h *heapBacking[C, R]) adjust(rec *registry.ClientRec[C, R]) {
	i, ok := h.pos[rec]
	if !ok {
		return
	}
	h.siftUp(i)
	h.siftDown(h.pos[rec])
}

func (h *heapBacking[C, R]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *heapBacking[C, R]) siftDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *heapBacking[C, R]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i]] = i
	h.pos[h.items[j]] = j
}

var _ backing[string, string] = &heapBacking[string, string]{}
