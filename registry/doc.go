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

// Package registry maps client IDs to their per-client scheduling state: service parameters, the FIFO of
// pending (tag, request) pairs, the previous tag, and the idle/lifecycle bookkeeping used to age out clients
// that have gone quiet. It holds no lock of its own — the scheduler package serializes all access to it
// under a single data mutex, per the concurrency model that also guards the priority package's orderings.
package registry
