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

// vectorBacking is a single dense slice of clients with a cached index of the current top. Every mutation
// recomputes the top with one O(n) sweep rather than maintaining heap structure; for small client counts
// (the vector backing's intended regime, on the order of a hundred clients or fewer) the better cache
// locality of a flat scan outranks the heap's logarithmic height.
type vectorBacking[C comparable, R any] struct {
	items []*registry.ClientRec[C, R]
	topAt int
	less  lessFunc[C, R]
}

func newVectorBacking[C comparable, R any](less lessFunc[C, R]) *vectorBacking[C, R] {
	return &vectorBacking[C, R]{less: less, topAt: -1}
}

func (v *vectorBacking[C, R]) len() int { return len(v.items) }

func (v *vectorBacking[C, R]) top() *registry.ClientRec[C, R] {
	if v.topAt < 0 {
		return nil
	}
	return v.items[v.topAt]
}

func (v *vectorBacking[C, R]) push(rec *registry.ClientRec[C, R]) {
	v.items = append(v.items, rec)
	v.recomputeTop()
}

func (v *vectorBacking[C, R]) remove(rec *registry.ClientRec[C, R]) {
	for i, item := range v.items {
		if item == rec {
			last := len(v.items) - 1
			v.items[i] = v.items[last]
			v.items = v.items[:last]
			v.recomputeTop()
			return
		}
	}
}

func (v *vectorBacking[C, R]) adjust(rec *registry.ClientRec[C, R]) {
	// The client's key changed in place; nothing to relocate in a flat slice, just re-find the top.
	v.recomputeTop()
}

func (v *vectorBacking[C, R]) recomputeTop() {
	v.topAt = -1
	for i, item := range v.items {
		if v.topAt == -1 || v.less(item, v.items[v.topAt]) {
			v.topAt = i
		}
	}
}

var _ backing[string, string] = &vectorBacking[string, string]{}
