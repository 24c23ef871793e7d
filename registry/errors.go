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

import "errors"

// ErrClientNotFound indicates an operation referenced a client ID that has no record in the registry. Per
// the registry's stated failure policy, operations on an unknown client are silent no-ops, and no function in
// this module returns this error; reservation-tag reduction works on the record it already holds.
var ErrClientNotFound = errors.New("dmclock: client not found in registry")
