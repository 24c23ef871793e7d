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

// Package scheduler is the scheduling core: it ties a registry.ClientRegistry and a priority.Index together
// behind a single data mutex, implements the tag-stamping submission path, the next-request selection state
// machine, post-dispatch reservation-tag reduction, idle re-entry drift correction, and the periodic
// idle/lifecycle aging pass. It exposes that core through two independent facades — Pull, for callers that
// drive dispatch themselves, and Push, for callers that want the scheduler to call back into a sink as soon
// as something becomes dispatchable.
package scheduler
