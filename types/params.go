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

// ReqParams carries the distributed feedback a client supplies alongside a new request: the number of
// reservation grants (Rho) and proportion grants (Delta) it believes it was given by other servers since its
// last submission to this one. The tag calculator uses these to advance the client's virtual clock by more
// than one unit when the client has been busy elsewhere.
type ReqParams struct {
	Rho   uint32
	Delta uint32
}
