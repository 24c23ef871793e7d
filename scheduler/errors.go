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

import "errors"

// ErrClientNotFoundForReduction indicates that reservation-tag reduction ran against a client that had
// already been removed from the registry. This should never happen under the single-mutex concurrency model
// — the client that was just dispatched from must still be present — so its appearance indicates a bug in
// the caller rather than a normal runtime condition.
var ErrClientNotFoundForReduction = errors.New("dmclock: client missing during reservation-tag reduction")

// ErrBothTagComponentsInfinite indicates a request tag with both R and P at +Inf reached the scheduling
// core. NextTag's ClientParameterRejected check is supposed to make this unreachable; its appearance
// indicates an invariant violation, not a normal runtime condition.
var ErrBothTagComponentsInfinite = errors.New("dmclock: request tag has both R and P at +Inf")
