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

// Package types holds the data model shared by every layer of the scheduler: the per-client service
// parameters, the three-coordinate request tag, the feedback parameters a client supplies on submission, and
// the dispatch phase reported back to callers. Nothing in this package is stateful; it is the vocabulary the
// registry, priority, and scheduler packages are written in.
package types
