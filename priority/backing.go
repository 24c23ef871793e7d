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

// backing is a single ordering over a set of clients: push/remove/adjust plus a cheap top(). Both
// implementations in this package (heapBacking and vectorBacking) satisfy it with identical observable
// behavior for the same sequence of calls; only their complexity characteristics differ.
type backing[C comparable, R any] interface {
	push(rec *registry.ClientRec[C, R])
	remove(rec *registry.ClientRec[C, R])
	adjust(rec *registry.ClientRec[C, R])
	top() *registry.ClientRec[C, R]
	len() int
}
