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

package types

import "errors"

// ErrClientParametersRejected indicates that a client's service parameters cannot produce a usable tag: both
// its reservation and its weight are zero, so every request from it would carry (R, P) = (+Inf, +Inf) and
// could never be scheduled by any ordering except the limit order. Detected at tag construction; fatal for
// the submission that triggered it, not for the scheduler as a whole.
var ErrClientParametersRejected = errors.New("dmclock: client reservation and weight are both zero")
